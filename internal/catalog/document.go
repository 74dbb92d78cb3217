package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document 是目录文件解析后的原始结构，字段与文件格式一一对应。
// YAML 是 JSON 的超集，因此同一套标签既能读 programs.yaml 也能读 programs.json。
type Document struct {
	Parameters []TypeSpec    `yaml:"parameters"` // 类型定义列表（basic / struct / enum）
	Programs   []ProgramSpec `yaml:"programs"`   // 程序定义列表
}

// TypeSpec 表示一条类型定义
type TypeSpec struct {
	Name     string        `yaml:"name"`
	Family   string        `yaml:"family"`             // basic / struct / enum
	Kind     string        `yaml:"kind,omitempty"`     // basic 专用，缺省时取 Name 本身
	Fields   []FieldSpec   `yaml:"fields,omitempty"`   // struct 专用，按声明顺序
	Variants []VariantSpec `yaml:"variants,omitempty"` // enum 专用，目前只做保存
}

// FieldSpec 表示 struct 字段或指令参数：名称 + 类型名
type FieldSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// VariantSpec 表示 enum 变体的元数据
type VariantSpec struct {
	Name  string `yaml:"name"`
	Value *int   `yaml:"value,omitempty"`
}

// ProgramSpec 表示一个链上程序
type ProgramSpec struct {
	ID           string            `yaml:"id"` // base58 或 64 位 hex
	Name         string            `yaml:"name"`
	Instructions []InstructionSpec `yaml:"instructions"`
}

// InstructionSpec 表示程序中的一条指令
type InstructionSpec struct {
	ID         uint32      `yaml:"id"`
	Name       string      `yaml:"name"`
	Parameters []FieldSpec `yaml:"parameters"`
}

// Parse 解析目录文件内容（YAML 或 JSON）
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog document: %w", err)
	}
	return &doc, nil
}

// LoadDocument 从文件读取并解析目录文档
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Load 读取目录文件并构建查找表
func Load(path string) (*Catalog, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return New(doc)
}
