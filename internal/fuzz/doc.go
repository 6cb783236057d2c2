// Package fuzztests houses Go fuzz harnesses that push arbitrary bytes through
// the front end (source -> lexer -> parser -> formatter) and check that it
// neither panics nor hangs, and that what it builds stays well formed.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
