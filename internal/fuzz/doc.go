// Package fuzztests houses Go fuzz harnesses for the front half of the zoia
// pipeline (source -> lexer -> parser -> astconv). They guard against panics
// and hangs on arbitrary input and check that the canonical form of a
// converted document is a fixed point.
//
// Назначение: прогонять произвольные байты через FileSet, лексер, парсер и
// конвертер.
//
// Не делает: генерацию корпусов, запись файлов, валидацию по манифесту.
package fuzztests
