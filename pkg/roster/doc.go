/*
Package roster provides the guide roster: built-in content, file loading,
validation and the per-session shuffle.

The shuffle is an unbiased Fisher-Yates over a copy of the roster, drawn from
a seeded source so a session can be restored with the same card order.
*/
package roster
