// Package syntax is an immutable syntax tree for declarations and their trivia.
//
// Invariants:
//   - Every token and node gets an ID when created. Edited copies keep the ID,
//     so an ID names the same element in every version of a tree.
//   - Rendering is the in-order concatenation of each token's leading trivia,
//     text and trailing trivia. Nothing is inserted while rendering.
//   - The leading trivia of a declaration is the leading trivia of its first token.
//   - Trivia is never reordered, only moved between tokens as whole lists.
package syntax
