package ast

type (
	// главные сущности
	FileID uint32
	ItemID uint32
	ExprID uint32
	// подсущности
	PayloadID uint32
	ProtoID   uint32
	FuncID    uint32
)

const (
	NoFileID    FileID    = 0
	NoItemID    ItemID    = 0
	NoExprID    ExprID    = 0
	NoPayloadID PayloadID = 0
	NoProtoID   ProtoID   = 0
	NoFuncID    FuncID    = 0
)

func (id FileID) IsValid() bool    { return id != NoFileID }
func (id ItemID) IsValid() bool    { return id != NoItemID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
func (id ProtoID) IsValid() bool   { return id != NoProtoID }
func (id FuncID) IsValid() bool    { return id != NoFuncID }
