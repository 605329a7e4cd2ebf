// Package texmath converts LaTeX-style math into Unicode text for terminals.
//
// Beautify applies an ordered table of context-free substitutions: sizing
// commands are dropped, structural commands (fractions, roots, font
// wrappers) are resolved, symbol commands become Unicode glyphs, accents
// become combining marks, scripts become super- and subscript characters,
// and anything left over is kept as a bracketed [\command] so no input is
// lost. Beautify never fails.
//
//	texmath.Beautify(`\frac{\alpha}{2} \leq x^{2}`) // "(α/2) ≤ x²"
//
// The package also knows the matrix environments (matrix, pmatrix, bmatrix,
// Bmatrix, vmatrix, Vmatrix) and how to split their bodies into cells.
package texmath
