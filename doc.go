// Package blockgen turns visual block programs into source code.
//
// The generation core lives in compiler/gen, with one package per target
// language (compiler/gen/lua, compiler/gen/php, compiler/gen/python).
// Workspace documents are read by compiler/load, and the compiler package
// ties both together. This package holds the pieces shared by all of them:
// the Cache interface used to skip regenerating unchanged programs, and
// the error types of cache operations.
package blockgen
