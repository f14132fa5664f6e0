// Package cpu implements the execution engine for a six register, six word
// teaching CPU.
//
// The CPU consists of a register file of six signed integers ($0-$5) and a
// memory of six signed integers (addresses 0-5). Memory is seeded with 10 in
// every cell on reset so that a load has a visible effect.
//
// Programs are lines of text in a four instruction assembly language:
//
//	add   $D , $S1 , $S2
//	sub   $D , $S1 , $S2
//	load  $D , ADDR
//	store $S , ADDR
//	END
//
// Opcodes are case-insensitive, and operands may be separated by any mix of
// whitespace and commas. Blank lines decode to a no-op.
package cpu
