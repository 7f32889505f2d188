package insts

// Op identifies a VXL opcode.
type Op uint8

// The VXL opcode table. Byte values match the on-disk encoding exactly.
const (
	OpNop Op = iota
	OpSyscall
	OpLdb
	OpLdi
	OpLdf
	OpMov
	OpPush
	OpPop
	OpSget
	OpMalloc
	OpMalloci
	OpFree
	OpFreea
	OpSetb
	OpSeti
	OpIsetb
	OpIseti
	OpGetb
	OpGeti
	OpIgetb
	OpIgeti
	OpLast
	OpLength
	OpClone
	OpCopy
	OpCopyi
	OpAddi
	OpSubi
	OpMuli
	OpDivi
	OpModi
	OpAddu
	OpSubu
	OpMulu
	OpDivu
	OpModu
	OpAddf
	OpSubf
	OpMulf
	OpDivf
	OpRotl
	OpRotli
	OpRotr
	OpRotri
	OpSll
	OpSlli
	OpSrl
	OpSrli
	OpNot
	OpAnd
	OpOr
	OpXor
	OpCmp
	OpCmpi
	OpCmpf
	OpJmp
	OpJeq
	OpJne
	OpJge
	OpJgt
	OpJle
	OpJlt
	OpI2f
	OpF2i
	OpSwpa
	OpSwpar
	OpSwpr
	OpCall
	OpRet
	OpHalt
)

var opcodeNames = map[Op]string{
	OpNop: "nop", OpSyscall: "syscall", OpLdb: "ldb", OpLdi: "ldi",
	OpLdf: "ldf", OpMov: "mov", OpPush: "push", OpPop: "pop",
	OpSget: "sget", OpMalloc: "malloc", OpMalloci: "malloci", OpFree: "free",
	OpFreea: "freea", OpSetb: "setb", OpSeti: "seti", OpIsetb: "isetb",
	OpIseti: "iseti", OpGetb: "getb", OpGeti: "geti", OpIgetb: "igetb",
	OpIgeti: "igeti", OpLast: "last", OpLength: "length", OpClone: "clone",
	OpCopy: "copy", OpCopyi: "copyi", OpAddi: "addi", OpSubi: "subi",
	OpMuli: "muli", OpDivi: "divi", OpModi: "modi", OpAddu: "addu",
	OpSubu: "subu", OpMulu: "mulu", OpDivu: "divu", OpModu: "modu",
	OpAddf: "addf", OpSubf: "subf", OpMulf: "mulf", OpDivf: "divf",
	OpRotl: "rotl", OpRotli: "rotli", OpRotr: "rotr", OpRotri: "rotri",
	OpSll: "sll", OpSlli: "slli", OpSrl: "srl", OpSrli: "srli",
	OpNot: "not", OpAnd: "and", OpOr: "or", OpXor: "xor",
	OpCmp: "cmp", OpCmpi: "cmpi", OpCmpf: "cmpf", OpJmp: "jmp",
	OpJeq: "jeq", OpJne: "jne", OpJge: "jge", OpJgt: "jgt",
	OpJle: "jle", OpJlt: "jlt", OpI2f: "i2f", OpF2i: "f2i",
	OpSwpa: "swpa", OpSwpar: "swpar", OpSwpr: "swpr", OpCall: "call",
	OpRet: "ret", OpHalt: "halt",
}

func (op Op) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "unknown"
}

// arity records how many immediates, addresses, and packed registers an
// opcode's encoding carries.
type arity struct {
	Immediates int
	Addresses  int
	Registers  int
}

var arities = map[Op]arity{
	OpNop:     {0, 0, 0},
	OpSyscall: {1, 0, 0},
	OpLdb:     {1, 0, 1},
	OpLdi:     {1, 0, 1},
	OpLdf:     {1, 0, 1},
	OpMov:     {0, 0, 2},
	OpPush:    {0, 0, 1},
	OpPop:     {0, 0, 1},
	OpSget:    {0, 0, 2},
	OpMalloc:  {0, 0, 2},
	OpMalloci: {1, 0, 1},
	OpFree:    {0, 0, 1},
	OpFreea:   {0, 1, 0},
	OpSetb:    {0, 0, 3},
	OpSeti:    {0, 0, 3},
	OpIsetb:   {1, 0, 2},
	OpIseti:   {1, 0, 2},
	OpGetb:    {0, 0, 3},
	OpGeti:    {0, 0, 3},
	OpIgetb:   {1, 0, 2},
	OpIgeti:   {1, 0, 2},
	OpLast:    {0, 0, 2},
	OpLength:  {0, 0, 2},
	OpClone:   {0, 0, 2},
	OpCopy:    {0, 0, 5},
	OpCopyi:   {3, 0, 2},
	OpAddi:    {0, 0, 3},
	OpSubi:    {0, 0, 3},
	OpMuli:    {0, 0, 3},
	OpDivi:    {0, 0, 3},
	OpModi:    {0, 0, 3},
	OpAddu:    {0, 0, 3},
	OpSubu:    {0, 0, 3},
	OpMulu:    {0, 0, 3},
	OpDivu:    {0, 0, 3},
	OpModu:    {0, 0, 3},
	OpAddf:    {0, 0, 3},
	OpSubf:    {0, 0, 3},
	OpMulf:    {0, 0, 3},
	OpDivf:    {0, 0, 3},
	OpRotl:    {0, 0, 2},
	OpRotli:   {1, 0, 1},
	OpRotr:    {0, 0, 2},
	OpRotri:   {1, 0, 1},
	OpSll:     {0, 0, 2},
	OpSlli:    {1, 0, 1},
	OpSrl:     {0, 0, 2},
	OpSrli:    {1, 0, 1},
	OpNot:     {0, 0, 1},
	OpAnd:     {0, 0, 3},
	OpOr:      {0, 0, 3},
	OpXor:     {0, 0, 3},
	OpCmp:     {0, 0, 2},
	OpCmpi:    {0, 0, 2},
	OpCmpf:    {0, 0, 2},
	OpJmp:     {0, 1, 0},
	OpJeq:     {0, 1, 0},
	OpJne:     {0, 1, 0},
	OpJge:     {0, 1, 0},
	OpJgt:     {0, 1, 0},
	OpJle:     {0, 1, 0},
	OpJlt:     {0, 1, 0},
	OpI2f:     {0, 0, 1},
	OpF2i:     {0, 0, 1},
	OpSwpa:    {0, 2, 0},
	OpSwpar:   {0, 0, 2},
	OpSwpr:    {0, 0, 2},
	OpCall:    {0, 1, 0},
	OpRet:     {0, 0, 0},
	OpHalt:    {0, 0, 0},
}
