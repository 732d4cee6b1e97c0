package ir

// Logical ids for the three arena pools. Ids are dense and monotonic, so
// they double as array and bit-vector indices.
type (
	SpaceID int
	BlockID int
	FuncID  int
)

// NoDeclaration marks an instruction that never received a declaration
// number. Only assignments get one.
const NoDeclaration = -1
