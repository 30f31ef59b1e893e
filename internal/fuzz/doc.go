// Package fuzztests houses Go fuzz harnesses for the report pipeline
// (bytes -> FileSet -> report.Parse -> power and life support). Its goal is
// to guard against panics on arbitrary input and to check that every
// successful analysis satisfies the result invariants.
//
// Назначение: загружать байты в FileSet и прогонять их через парсеры отчётов,
// замеров глубины и команд, а затем через анализ.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/report, internal/analysis,
// internal/testkit, internal/driver, internal/sweep, internal/dive.

package fuzztests
