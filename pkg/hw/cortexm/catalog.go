package cortexm

import "fault_tool/pkg/toolutil/bit"

// CFSR = UFSR[31:16] | BFSR[15:8] | MMFSR[7:0]
const (
	CfsrMmfsrStart = 0
	CfsrBfsrStart  = 8
	CfsrUfsrStart  = 16
)

// BusFault Status Register (CFSR[15:8])
var bfsrCatalog = bit.MustCatalog(
	bit.NewField("BFARVALID", 7, 1, "BFAR has valid contents"),
	bit.NewField("LSPERR", 5, 1, "A bus fault occurred during FP lazy state preservation"),
	bit.NewField("STKERR", 4, 1, "A derived bus fault has occurred on exception entry"),
	bit.NewField("UNSTKERR", 3, 1, "A derived bus fault has occurred on exception return"),
	bit.NewField("IMPRECISERR", 2, 1, "An imprecise data access error has occurred"),
	bit.NewField("PRECISERR", 1, 1, "A precise data access error has occurred, and the processor has written the faulting address to the BFAR"),
	bit.NewField("IBUSERR", 0, 1, "A bus fault on an instruction prefetch has occurred. The fault is signaled only if the instruction is issued"),
)

// UsageFault Status Register (CFSR[31:16])
var ufsrCatalog = bit.MustCatalog(
	bit.NewField("DIVBYZERO", 9, 1, "Divide by zero error has occurred"),
	bit.NewField("UNALIGNED", 8, 1, "Unaligned access error has occurred"),
	bit.NewField("NOCP", 3, 1, "A coprocessor access error has occurred. This shows that the coprocessor is disabled or not present"),
	bit.NewField("INVPC", 2, 1, "An integrity check error has occurred on EXC_RETURN"),
	bit.NewField("INVSTATE", 1, 1, "Instruction executed with invalid EPSR.T or EPSR.IT field"),
	bit.NewField("UNDEFINSTR", 0, 1, "The processor has attempted to execute an undefined instruction. This might be an undefined instruction associated with an enabled coprocessor"),
)

// MemManage Fault Status Register (CFSR[7:0])
var mmfsrCatalog = bit.MustCatalog(
	bit.NewField("MMARVALID", 7, 1, "MMFAR has valid contents"),
	bit.NewField("MLSPERR", 5, 1, "A MemManage fault occurred during FP lazy state preservation"),
	bit.NewField("MSTKERR", 4, 1, "A derived MemManage fault has occurred on exception entry"),
	bit.NewField("MUNSTKERR", 3, 1, "A derived MemManage fault has occurred on exception return"),
	bit.NewField("DACCVIOL", 1, 1, "Data access violation. The MMFAR shows the data address that the load or store tried to access"),
	bit.NewField("IACCVIOL", 0, 1, "MPU or Execute Never (XN) default memory map access violation on an instruction fetch has occurred. The fault is signaled only if the instruction is issued"),
)

// HardFault Status Register
var hfsrCatalog = bit.MustCatalog(
	bit.NewField("DEBUGEVT", 31, 1, "A debug event has occurred while halting debug was disabled and was escalated to a HardFault"),
	bit.NewField("FORCED", 30, 1, "A configurable fault was escalated to a HardFault because its handler could not run, either it is disabled or of insufficient priority. Check CFSR for the cause"),
	bit.NewField("VECTTBL", 1, 1, "A bus fault occurred on a vector table read during exception processing"),
)

// System Handler Control and State Register
var shcsrCatalog = bit.MustCatalog(
	bit.NewField("USGFAULTENA", 18, 1, "UsageFault exception is enabled"),
	bit.NewField("BUSFAULTENA", 17, 1, "BusFault exception is enabled"),
	bit.NewField("MEMFAULTENA", 16, 1, "MemManage exception is enabled"),
	bit.NewField("SVCALLPENDED", 15, 1, "SVCall exception is pending"),
	bit.NewField("BUSFAULTPENDED", 14, 1, "BusFault exception is pending"),
	bit.NewField("MEMFAULTPENDED", 13, 1, "MemManage exception is pending"),
	bit.NewField("USGFAULTPENDED", 12, 1, "UsageFault exception is pending"),
	bit.NewField("SYSTICKACT", 11, 1, "SysTick exception is active"),
	bit.NewField("PENDSVACT", 10, 1, "PendSV exception is active"),
	bit.NewField("MONITORACT", 8, 1, "Debug monitor exception is active"),
	bit.NewField("SVCALLACT", 7, 1, "SVCall exception is active"),
	bit.NewField("USGFAULTACT", 3, 1, "UsageFault exception is active"),
	bit.NewField("BUSFAULTACT", 1, 1, "BusFault exception is active"),
	bit.NewField("MEMFAULTACT", 0, 1, "MemManage exception is active"),
)
