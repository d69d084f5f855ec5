package classfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

const magic = 0xCAFEBABE

// Access flags of interest.
const (
	AccPublic    = 0x0001
	AccInterface = 0x0200
)

// Constant pool tags.
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

var (
	// ErrNotClassFile is returned when the input lacks the class file magic.
	ErrNotClassFile = errors.New("not a class file")

	// ErrTruncated is returned when the input ends inside a structure.
	ErrTruncated = errors.New("truncated class file")
)

// ClassInfo is the decoded header of a class file.
type ClassInfo struct {
	Name         string
	SuperName    string // Empty for java.lang.Object and module-info
	AccessFlags  uint16
	MajorVersion uint16
	Annotations  []string
}

// HasAnyAnnotation reports whether the class carries one of the given
// annotation types.
func (c *ClassInfo) HasAnyAnnotation(types ...string) bool {
	for _, a := range c.Annotations {
		for _, t := range types {
			if a == t {
				return true
			}
		}
	}
	return false
}

// IsInterface reports whether the class is an interface or annotation type.
func (c *ClassInfo) IsInterface() bool {
	return c.AccessFlags&AccInterface != 0
}

type cpEntry struct {
	tag  byte
	utf8 string
	ref  uint16 // name index of Class entries
}

type reader struct {
	data []byte
	pos  int
	err  error
}

func (r *reader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || len(r.data)-r.pos < n {
		r.err = ErrTruncated
		return false
	}
	return true
}

func (r *reader) u1() byte {
	if !r.need(1) {
		return 0
	}
	v := r.data[r.pos]
	r.pos++
	return v
}

func (r *reader) u2() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v
}

func (r *reader) u4() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

func (r *reader) bytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	v := r.data[r.pos : r.pos+n]
	r.pos += n
	return v
}

func (r *reader) skip(n int) {
	if r.need(n) {
		r.pos += n
	}
}

// Parse decodes the class header and class-level annotations of data.
func Parse(data []byte) (*ClassInfo, error) {
	r := &reader{data: data}

	if r.u4() != magic {
		return nil, ErrNotClassFile
	}
	r.u2() // minor
	major := r.u2()

	pool, err := readConstantPool(r)
	if err != nil {
		return nil, err
	}

	info := &ClassInfo{MajorVersion: major}
	info.AccessFlags = r.u2()
	thisClass := r.u2()
	superClass := r.u2()
	if r.err != nil {
		return nil, r.err
	}

	if info.Name, err = className(pool, thisClass); err != nil {
		return nil, err
	}
	if superClass != 0 {
		if info.SuperName, err = className(pool, superClass); err != nil {
			return nil, err
		}
	}

	interfaces := r.u2()
	r.skip(int(interfaces) * 2)

	// fields, then methods
	for range 2 {
		count := r.u2()
		for i := 0; i < int(count) && r.err == nil; i++ {
			r.skip(6) // access_flags, name_index, descriptor_index
			skipAttributes(r)
		}
	}

	attributes := r.u2()
	for i := 0; i < int(attributes) && r.err == nil; i++ {
		nameIndex := r.u2()
		length := r.u4()
		if r.err != nil {
			break
		}
		body := r.bytes(int(length))
		if r.err != nil {
			break
		}

		name, err := utf8At(pool, nameIndex)
		if err != nil {
			return nil, err
		}
		if name != "RuntimeVisibleAnnotations" && name != "RuntimeInvisibleAnnotations" {
			continue
		}

		annotations, err := readAnnotations(body, pool)
		if err != nil {
			return nil, fmt.Errorf("%s of %s: %w", name, info.Name, err)
		}
		info.Annotations = append(info.Annotations, annotations...)
	}

	if r.err != nil {
		return nil, r.err
	}
	return info, nil
}

func readConstantPool(r *reader) ([]cpEntry, error) {
	count := r.u2()
	if r.err != nil {
		return nil, r.err
	}

	pool := make([]cpEntry, count)
	for i := 1; i < int(count); i++ {
		tag := r.u1()
		entry := cpEntry{tag: tag}

		switch tag {
		case tagUtf8:
			n := r.u2()
			entry.utf8 = string(r.bytes(int(n)))
		case tagClass:
			entry.ref = r.u2()
		case tagString, tagMethodType, tagModule, tagPackage:
			r.skip(2)
		case tagMethodHandle:
			r.skip(3)
		case tagInteger, tagFloat, tagFieldref, tagMethodref, tagInterfaceMethodref,
			tagNameAndType, tagDynamic, tagInvokeDynamic:
			r.skip(4)
		case tagLong, tagDouble:
			r.skip(8)
			pool[i] = entry
			i++ // eight-byte constants take two slots
			continue
		default:
			if r.err != nil {
				return nil, r.err
			}
			return nil, fmt.Errorf("invalid constant pool tag %d at index %d", tag, i)
		}

		if r.err != nil {
			return nil, r.err
		}
		pool[i] = entry
	}

	return pool, r.err
}

func utf8At(pool []cpEntry, index uint16) (string, error) {
	if int(index) <= 0 || int(index) >= len(pool) || pool[index].tag != tagUtf8 {
		return "", fmt.Errorf("constant pool index %d is not a Utf8 entry", index)
	}
	return pool[index].utf8, nil
}

func className(pool []cpEntry, index uint16) (string, error) {
	if int(index) <= 0 || int(index) >= len(pool) || pool[index].tag != tagClass {
		return "", fmt.Errorf("constant pool index %d is not a Class entry", index)
	}
	internal, err := utf8At(pool, pool[index].ref)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(internal, "/", "."), nil
}

func skipAttributes(r *reader) {
	count := r.u2()
	for i := 0; i < int(count) && r.err == nil; i++ {
		r.skip(2)
		length := r.u4()
		r.skip(int(length))
	}
}

func readAnnotations(body []byte, pool []cpEntry) ([]string, error) {
	r := &reader{data: body}
	count := r.u2()

	var out []string
	for i := 0; i < int(count) && r.err == nil; i++ {
		typeIndex := r.u2()
		if r.err != nil {
			break
		}
		desc, err := utf8At(pool, typeIndex)
		if err != nil {
			return nil, err
		}
		out = append(out, typeName(desc))

		if err := skipElementPairs(r); err != nil {
			return nil, err
		}
	}

	if r.err != nil {
		return nil, r.err
	}
	return out, nil
}

func skipElementPairs(r *reader) error {
	pairs := r.u2()
	for i := 0; i < int(pairs) && r.err == nil; i++ {
		r.skip(2) // element_name_index
		if err := skipElementValue(r); err != nil {
			return err
		}
	}
	return r.err
}

func skipElementValue(r *reader) error {
	tag := r.u1()
	if r.err != nil {
		return r.err
	}

	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's', 'c':
		r.skip(2)
	case 'e':
		r.skip(4)
	case '@':
		r.skip(2) // type_index
		return skipElementPairs(r)
	case '[':
		n := r.u2()
		for i := 0; i < int(n) && r.err == nil; i++ {
			if err := skipElementValue(r); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("invalid element value tag %q", tag)
	}
	return r.err
}

// typeName converts a field descriptor such as "Lcom/acme/Entity;" to
// "com.acme.Entity".
func typeName(desc string) string {
	if strings.HasPrefix(desc, "L") && strings.HasSuffix(desc, ";") {
		desc = desc[1 : len(desc)-1]
	}
	return strings.ReplaceAll(desc, "/", ".")
}
