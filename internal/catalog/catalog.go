package catalog

import (
	"fmt"

	"github.com/albi84/solana-message-parser/internal/types"
	"github.com/albi84/solana-message-parser/pkg/logger"
)

// Family 表示参数类型的解码策略类别
type Family string

const (
	FamilyBasic  Family = "basic"
	FamilyStruct Family = "struct"
	FamilyEnum   Family = "enum"
)

// BasicKind 表示 basic 类型对应的原始读取方式
type BasicKind string

const (
	KindU32    BasicKind = "u32"
	KindI32    BasicKind = "i32"
	KindU64    BasicKind = "u64"
	KindI64    BasicKind = "i64"
	KindString BasicKind = "String"
	KindPubkey BasicKind = "Pubkey"
)

// Valid 判断是否属于已知的 basic 类型集合
func (k BasicKind) Valid() bool {
	switch k {
	case KindU32, KindI32, KindU64, KindI64, KindString, KindPubkey:
		return true
	default:
		return false
	}
}

// Field 是 struct 字段或指令参数
type Field struct {
	Name string
	Type string
}

// Variant 是 enum 变体元数据
type Variant struct {
	Name  string
	Value *int
}

// TypeDef 是一条类型定义。
// Family 原样保存文档中的取值，不在加载阶段校验，未知取值在解码到该类型时才报错。
type TypeDef struct {
	Name     string
	Family   Family
	Kind     BasicKind // 仅 basic
	Fields   []Field   // 仅 struct，保持声明顺序
	Variants []Variant // 仅 enum
}

// InstructionDef 是一条指令定义
type InstructionDef struct {
	ID     uint32
	Name   string
	Params []Field // 保持声明顺序
}

// ProgramDef 是一个程序定义
type ProgramDef struct {
	ID           string       // 目录中书写的原始地址字符串，用于展示
	Address      types.Pubkey // 解析后的地址，用于查找
	Name         string
	instructions map[uint32]*InstructionDef
}

// Label 返回 "<name> (<id>)" 形式的展示名称
func (p *ProgramDef) Label() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.ID)
}

// Instruction 按指令 ID 查找指令定义
func (p *ProgramDef) Instruction(id uint32) (*InstructionDef, bool) {
	def, ok := p.instructions[id]
	return def, ok
}

// InstructionCount 返回已登记的指令数量
func (p *ProgramDef) InstructionCount() int {
	return len(p.instructions)
}

// Catalog 是加载完成后的只读查找表，构建后不再修改，可被多个 goroutine 共享。
type Catalog struct {
	types    map[string]*TypeDef
	programs map[types.Pubkey]*ProgramDef
	order    []*ProgramDef // 声明顺序
}

// New 根据文档构建查找表。
// 名称 / 地址 / 指令 ID 重复时保留第一条定义，地址无法解析的程序被跳过。
// 加载阶段不做一致性检查，问题留到解码真正用到时暴露。
func New(doc *Document) (*Catalog, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil catalog document")
	}
	c := &Catalog{
		types:    make(map[string]*TypeDef, len(doc.Parameters)),
		programs: make(map[types.Pubkey]*ProgramDef, len(doc.Programs)),
	}

	for _, spec := range doc.Parameters {
		if _, exists := c.types[spec.Name]; exists {
			logger.Warnf("[catalog] duplicate type %q ignored", spec.Name)
			continue
		}
		c.types[spec.Name] = newTypeDef(spec)
	}

	for i, spec := range doc.Programs {
		addr, err := types.ParsePubkey(spec.ID)
		if err != nil {
			// 地址无法解析的程序不入表，引用到它的指令在解码时报 ErrProgramNotFound
			logger.Warnf("[catalog] program #%d (%s) skipped: %v", i, spec.Name, err)
			continue
		}
		if _, exists := c.programs[addr]; exists {
			logger.Warnf("[catalog] duplicate program %s (%s) ignored", spec.ID, spec.Name)
			continue
		}
		program := &ProgramDef{
			ID:           spec.ID,
			Address:      addr,
			Name:         spec.Name,
			instructions: make(map[uint32]*InstructionDef, len(spec.Instructions)),
		}
		for _, ix := range spec.Instructions {
			if _, exists := program.instructions[ix.ID]; exists {
				logger.Warnf("[catalog] %s: duplicate instruction id %d (%s) ignored", spec.Name, ix.ID, ix.Name)
				continue
			}
			program.instructions[ix.ID] = &InstructionDef{
				ID:     ix.ID,
				Name:   ix.Name,
				Params: toFields(ix.Parameters),
			}
		}
		c.programs[addr] = program
		c.order = append(c.order, program)
	}
	return c, nil
}

func newTypeDef(spec TypeSpec) *TypeDef {
	def := &TypeDef{
		Name:   spec.Name,
		Family: Family(spec.Family),
		Fields: toFields(spec.Fields),
	}
	if def.Family == FamilyBasic {
		def.Kind = BasicKind(spec.Kind)
		if def.Kind == "" {
			def.Kind = BasicKind(spec.Name)
		}
	}
	if len(spec.Variants) > 0 {
		def.Variants = make([]Variant, 0, len(spec.Variants))
		for _, v := range spec.Variants {
			def.Variants = append(def.Variants, Variant{Name: v.Name, Value: v.Value})
		}
	}
	return def
}

func toFields(specs []FieldSpec) []Field {
	fields := make([]Field, 0, len(specs))
	for _, f := range specs {
		fields = append(fields, Field{Name: f.Name, Type: f.Type})
	}
	return fields
}

// Type 按名称查找类型定义
func (c *Catalog) Type(name string) (*TypeDef, bool) {
	def, ok := c.types[name]
	return def, ok
}

// Program 按地址查找程序定义
func (c *Catalog) Program(addr types.Pubkey) (*ProgramDef, bool) {
	def, ok := c.programs[addr]
	return def, ok
}

// Programs 按声明顺序返回已登记的程序
func (c *Catalog) Programs() []*ProgramDef {
	return c.order
}

// Stats 返回类型与程序数量，用于启动日志
func (c *Catalog) Stats() (typeCount, programCount int) {
	return len(c.types), len(c.programs)
}
