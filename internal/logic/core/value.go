package core

import (
	"encoding/json"
	"fmt"
)

// ValueKind 标识 Value 中实际保存的数据类别
type ValueKind uint8

const (
	KindInvalid ValueKind = iota
	KindString            // 十六进制数值、地址、字符串
	KindStruct            // 嵌套参数列表
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindStruct:
		return "struct"
	default:
		return "invalid"
	}
}

// Value 是参数值的标签联合：字符串或嵌套参数列表。
// 零值为 KindInvalid，序列化时输出 null。
type Value struct {
	kind   ValueKind
	str    string
	fields []*Parameter
}

func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

func StructValue(fields []*Parameter) Value {
	return Value{kind: KindStruct, fields: fields}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

// Str 返回字符串值，类型不符时 ok=false
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Fields 返回嵌套参数列表，类型不符时 ok=false
func (v Value) Fields() ([]*Parameter, bool) {
	return v.fields, v.kind == KindStruct
}

// Field 按名称查找嵌套字段（仅 KindStruct 有效）
func (v Value) Field(name string) (*Parameter, bool) {
	if v.kind != KindStruct {
		return nil, false
	}
	for _, f := range v.fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// raw 返回用于序列化的底层值
func (v Value) raw() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindStruct:
		if v.fields == nil {
			return []*Parameter{}
		}
		return v.fields
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw())
}

func (v Value) MarshalYAML() (interface{}, error) {
	return v.raw(), nil
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindStruct:
		return fmt.Sprintf("struct(%d fields)", len(v.fields))
	default:
		return "<invalid>"
	}
}
