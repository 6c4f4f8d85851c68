// Package cpu implements the assembler and interpreter for the SIC-1 system.
//
// The SIC-1 is a one instruction computer. Its only instruction, subleq a, b, c,
// subtracts the byte at address b from the byte at address a, stores the
// result at a, and jumps to c when the signed result is zero or negative.
// Memory is 256 bytes; addresses 253 (@IN) and 254 (@OUT) are the input and
// output ports, and execution stops once the instruction pointer can no longer
// fetch a whole instruction, which is how jumping to 255 (@HALT) halts.
//
// The assembler is a two pass assembler supporting labels, forward references,
// label offsets (@label+1) and the .data directive.
package cpu
