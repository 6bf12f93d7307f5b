/*
Package tfhe is a pure Go implementation of the TFHE programmable bootstrap.
It provides torus-LWE and GLWE encryption over the implicit modulus 2^64, the
GGSW external product, blind rotation with lookup-table ("accumulator")
evaluation, and both single-threaded and data-parallel bootstrapping paths,
enabling code-simplicity and cross-platform builds while retaining the
performance of native libraries.
*/
package tfhe
