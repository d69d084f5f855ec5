// Package classfiletest builds minimal class files for tests.
package classfiletest

import (
	"bytes"
	"encoding/binary"
	"strings"
)

// Class describes the class file to build. Names use source form
// ("com.acme.Order"), annotations are annotation type names.
type Class struct {
	Name      string
	SuperName string // Defaults to java.lang.Object
	Flags     uint16 // Defaults to ACC_PUBLIC|ACC_SUPER

	Annotations          []string // RuntimeVisibleAnnotations
	InvisibleAnnotations []string // RuntimeInvisibleAnnotations

	// AnnotatedField adds a field carrying the first visible annotation so
	// member attributes have to be skipped.
	AnnotatedField bool
}

type pool struct {
	buf   bytes.Buffer
	count uint16
	utf8  map[string]uint16
}

func (p *pool) addUtf8(s string) uint16 {
	if idx, ok := p.utf8[s]; ok {
		return idx
	}
	p.count++
	p.buf.WriteByte(1)
	writeU2(&p.buf, uint16(len(s)))
	p.buf.WriteString(s)
	p.utf8[s] = p.count
	return p.count
}

func (p *pool) addClass(name string) uint16 {
	nameIdx := p.addUtf8(internalName(name))
	p.count++
	p.buf.WriteByte(7)
	writeU2(&p.buf, nameIdx)
	return p.count
}

func (p *pool) addLong(v uint64) {
	p.count++
	p.buf.WriteByte(5)
	_ = binary.Write(&p.buf, binary.BigEndian, v)
	p.count++ // second slot
}

// Bytes encodes c as a class file.
func (c Class) Bytes() []byte {
	p := &pool{utf8: make(map[string]uint16)}

	superName := c.SuperName
	if superName == "" {
		superName = "java.lang.Object"
	}
	flags := c.Flags
	if flags == 0 {
		flags = 0x0021
	}

	thisIdx := p.addClass(c.Name)
	superIdx := p.addClass(superName)
	p.addLong(42)
	p.addUtf8("value")

	visible := encodeAnnotations(p, c.Annotations)
	invisible := encodeAnnotations(p, c.InvisibleAnnotations)

	var body bytes.Buffer
	writeU2(&body, flags)
	writeU2(&body, thisIdx)
	writeU2(&body, superIdx)
	writeU2(&body, 0) // interfaces

	if c.AnnotatedField && len(c.Annotations) > 0 {
		writeU2(&body, 1)
		writeU2(&body, 0x0002)
		writeU2(&body, p.addUtf8("id"))
		writeU2(&body, p.addUtf8("J"))
		writeAttributes(&body, p, map[string][]byte{
			"RuntimeVisibleAnnotations": encodeAnnotations(p, c.Annotations[:1]),
		})
	} else {
		writeU2(&body, 0)
	}
	writeU2(&body, 0) // methods

	attrs := map[string][]byte{}
	if visible != nil {
		attrs["RuntimeVisibleAnnotations"] = visible
	}
	if invisible != nil {
		attrs["RuntimeInvisibleAnnotations"] = invisible
	}
	attrs["SourceFile"] = u2Bytes(p.addUtf8(sourceFile(c.Name)))
	writeAttributes(&body, p, attrs)

	var out bytes.Buffer
	_ = binary.Write(&out, binary.BigEndian, uint32(0xCAFEBABE))
	writeU2(&out, 0)
	writeU2(&out, 61)
	writeU2(&out, p.count+1)
	out.Write(p.buf.Bytes())
	out.Write(body.Bytes())
	return out.Bytes()
}

// encodeAnnotations writes an annotations table. Every annotation carries
// one element pair with an array value so element values get exercised.
func encodeAnnotations(p *pool, types []string) []byte {
	if len(types) == 0 {
		return nil
	}

	var b bytes.Buffer
	writeU2(&b, uint16(len(types)))
	for _, t := range types {
		writeU2(&b, p.addUtf8("L"+internalName(t)+";"))
		writeU2(&b, 1)
		writeU2(&b, p.addUtf8("value"))
		b.WriteByte('[')
		writeU2(&b, 2)
		b.WriteByte('s')
		writeU2(&b, p.addUtf8("x"))
		b.WriteByte('e')
		writeU2(&b, p.addUtf8("Ljavax/persistence/FetchType;"))
		writeU2(&b, p.addUtf8("LAZY"))
	}
	return b.Bytes()
}

func writeAttributes(b *bytes.Buffer, p *pool, attrs map[string][]byte) {
	// Fixed order keeps the output deterministic.
	order := []string{"RuntimeVisibleAnnotations", "RuntimeInvisibleAnnotations", "SourceFile"}

	var n uint16
	for _, name := range order {
		if _, ok := attrs[name]; ok {
			n++
		}
	}
	writeU2(b, n)
	for _, name := range order {
		data, ok := attrs[name]
		if !ok {
			continue
		}
		writeU2(b, p.addUtf8(name))
		_ = binary.Write(b, binary.BigEndian, uint32(len(data)))
		b.Write(data)
	}
}

func writeU2(b *bytes.Buffer, v uint16) {
	_ = binary.Write(b, binary.BigEndian, v)
}

func u2Bytes(v uint16) []byte {
	return []byte{byte(v >> 8), byte(v)}
}

func internalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}

func sourceFile(name string) string {
	simple := name[strings.LastIndex(name, ".")+1:]
	if i := strings.Index(simple, "$"); i >= 0 {
		simple = simple[:i]
	}
	return simple + ".java"
}
