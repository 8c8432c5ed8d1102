// Package calc evaluates arithmetic expressions with named variables, and
// sweeps single-variable function definitions across integer domains.
//
// Expressions use + - * / and ^, with the usual precedence; ^ is
// right-associative, so "2^3^2" is "2^(3^2)". A minus sign in front of an
// operand binds tighter than any infix operator. Parse an expression once with
// a Grammar and evaluate it for as many environments as you like.
//
// A Solver adds implicit multiplication, so "4(10+4)^2" and "0.1x^3" mean
// what they look like, and batch operations which isolate failures: one bad
// equation or one bad point of a domain gives an absent Result rather than an
// error for the whole batch.
package calc
