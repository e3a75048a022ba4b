// Package chsh runs the exhaustive CHSH-style extremum search over a fixed
// set of unit vectors.
//
// The vertex set is a pentagonal prism: two rings of five directions at
// heights ±h, normalized onto the unit sphere. BruteForce enumerates every
// index quadruple (a, a', b, b') and ranks the absolute value of
//
//	S = -a·b + a·b' + a'·b + a'·b'
//
// returning the maximum together with tie and bound counts, so the result
// works as a certificate that nothing in the set exceeds a claimed bound.
// Scan repeats the search across a sweep of prism heights.
package chsh
