// Package compare provides the comparator predicates used by check
// listeners when a driver answer arrives.
//
// Every comparator shares one signature, Func(expected, actual), so
// that operator tables can dispatch them uniformly:
//   - Equals / NotEquals (deep, then numeric, then string-form)
//   - Gt / Gte / Lt / Lte (numeric, string-tolerant)
//   - Between (inclusive two-element range)
//   - Truthy / Falsy (bool true/false or the strings "true"/"false")
//
// Driver transports stringify most values, so numeric comparators
// coerce strings, and the truthiness pair accepts both the boolean
// and its string form. Apply runs a comparator and converts any
// panic (malformed ranges, nil bounds) into a plain false.
package compare
