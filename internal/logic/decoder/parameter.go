package decoder

import (
	"fmt"

	"github.com/albi84/solana-message-parser/internal/catalog"
	"github.com/albi84/solana-message-parser/internal/logic/core"
	"github.com/albi84/solana-message-parser/internal/logic/wire"
	"github.com/albi84/solana-message-parser/internal/types"
)

// DecodeParameter 按类型名从游标处解码一个参数值，返回消费的字节数。
// 失败时游标回到调用前的位置，即对调用方而言消费 0 字节。
func (d *Decoder) DecodeParameter(c *wire.Cursor, typeName string) (int, core.Value, error) {
	start := c.Pos()
	value, err := d.decodeParameter(c, typeName, 0)
	if err != nil {
		c.Rewind(start)
		return 0, core.Value{}, err
	}
	return c.Pos() - start, value, nil
}

func (d *Decoder) decodeParameter(c *wire.Cursor, typeName string, depth int) (core.Value, error) {
	if depth > d.opt.MaxDepth {
		return core.Value{}, fmt.Errorf("%w: type %q nested deeper than %d levels (cyclic struct?)",
			ErrSchemaCorruption, typeName, d.opt.MaxDepth)
	}

	def, ok := d.catalog.Type(typeName)
	if !ok {
		return core.Value{}, fmt.Errorf("%w: %q", ErrTypeNotFound, typeName)
	}

	switch def.Family {
	case catalog.FamilyBasic:
		return d.decodeBasic(c, def)
	case catalog.FamilyStruct:
		return d.decodeStruct(c, def, depth)
	case catalog.FamilyEnum:
		return core.Value{}, fmt.Errorf("%w: enum %q decoding is not implemented", ErrUnsupportedFamily, def.Name)
	default:
		return core.Value{}, fmt.Errorf("%w: %w: type %q has family %q",
			ErrSchemaCorruption, ErrUnsupportedFamily, def.Name, def.Family)
	}
}

// decodeBasic 按 basic 类型分派到对应的原始读取方法
func (d *Decoder) decodeBasic(c *wire.Cursor, def *catalog.TypeDef) (core.Value, error) {
	var (
		s   string
		err error
	)
	switch def.Kind {
	case catalog.KindU32, catalog.KindI32:
		s, err = c.ReadReversedHex(4)
	case catalog.KindU64, catalog.KindI64:
		s, err = c.ReadReversedHex(8)
	case catalog.KindString:
		s, err = c.ReadLengthPrefixedString()
	case catalog.KindPubkey:
		s, err = c.ReadFixedHex(types.PubkeySize)
	default:
		return core.Value{}, fmt.Errorf("%w: basic type %q has unknown kind %q", ErrSchemaCorruption, def.Name, def.Kind)
	}
	if err != nil {
		return core.Value{}, fmt.Errorf("decode %s: %w", def.Name, err)
	}
	return core.StringValue(s), nil
}

// decodeStruct 按声明顺序依次解码各字段
func (d *Decoder) decodeStruct(c *wire.Cursor, def *catalog.TypeDef, depth int) (core.Value, error) {
	fields := make([]*core.Parameter, 0, len(def.Fields))
	for _, f := range def.Fields {
		v, err := d.decodeParameter(c, f.Type, depth+1)
		if err != nil {
			return core.Value{}, fmt.Errorf("%s.%s: %w", def.Name, f.Name, err)
		}
		fields = append(fields, &core.Parameter{Name: f.Name, Type: f.Type, Value: v})
	}
	return core.StructValue(fields), nil
}
