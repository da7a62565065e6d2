// Package priority lowers the scheduling priority of the running process so
// long create and verify runs do not compete with interactive work.
//
// Lower is a one-shot call made at startup before any tree work. Engine
// processes started afterwards inherit the lowered priority.
package priority

// Niceness is the CPU nice value applied by Lower.
const Niceness = 19
