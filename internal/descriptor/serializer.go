package descriptor

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/ethlo/jpagen/pkg/jpagen"
)

// Create builds the default descriptor skeleton: one unit with the given
// name, the EclipseLink provider, and static weaving enabled.
func Create(unitName string) *Descriptor {
	return &Descriptor{
		Namespace: DefaultNamespace,
		Version:   DefaultNamespace.DefaultVersion(),
		Unit: Unit{
			Name:       unitName,
			Provider:   jpagen.DefaultProvider,
			Properties: Properties{{Name: jpagen.WeavingProperty, Value: jpagen.WeavingStatic}},
			Classes:    jpagen.NewClassSet(),
		},
	}
}

// Parse reads a descriptor. path is only used in error messages.
//
// Input that is not well-formed XML fails with *ParseError; well-formed
// input of the wrong shape fails with *MalformedDescriptorError. Repeated
// <class> entries collapse into one.
func Parse(data []byte, path string) (*Descriptor, error) {
	if err := checkWellFormed(data, path); err != nil {
		return nil, err
	}

	var doc xmlPersistence
	if err := newDecoder(data).Decode(&doc); err != nil {
		return nil, wrapXMLError(err, path)
	}

	if doc.XMLName.Local != "persistence" {
		return nil, &MalformedDescriptorError{
			Path:    path,
			Message: fmt.Sprintf("root element is <%s>, expected <persistence>", doc.XMLName.Local),
			Hint:    shapeHint,
		}
	}

	ns, ok := NamespaceFromURI(doc.XMLName.Space)
	if !ok {
		return nil, &MalformedDescriptorError{
			Path:    path,
			Message: fmt.Sprintf("unrecognised namespace %q on <persistence>", doc.XMLName.Space),
			Hint:    shapeHint,
		}
	}

	switch len(doc.Units) {
	case 0:
		return nil, &MalformedDescriptorError{
			Path:    path,
			Message: "no <persistence-unit> element found",
			Hint:    shapeHint,
		}
	case 1:
	default:
		return nil, &MalformedDescriptorError{
			Path:    path,
			Message: fmt.Sprintf("found %d <persistence-unit> elements; multi-unit descriptors are not supported", len(doc.Units)),
			Hint:    "Split the units into separate projects, or maintain this descriptor by hand and disable descriptor updates.",
		}
	}

	unit, err := fromWireUnit(doc.Units[0], ns, path)
	if err != nil {
		return nil, err
	}

	version := strings.TrimSpace(doc.Version)
	if version == "" {
		version = ns.DefaultVersion()
	}

	return &Descriptor{Namespace: ns, Version: version, Unit: unit}, nil
}

// newDecoder returns a decoder that honours the encoding declared in the
// XML header, such as ISO-8859-1.
func newDecoder(data []byte) *xml.Decoder {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel
	return decoder
}

// checkWellFormed reads every token so that errors anywhere in the input,
// including after the root element, are reported as parse errors.
func checkWellFormed(data []byte, path string) error {
	decoder := newDecoder(data)
	depth := 0
	roots := 0

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return wrapXMLError(err, path)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					line, _ := decoder.InputPos()
					return &ParseError{Path: path, Line: line, Message: "multiple root elements"}
				}
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				line, _ := decoder.InputPos()
				return &ParseError{Path: path, Line: line, Message: "text outside the root element"}
			}
		}
	}

	if roots == 0 {
		return &ParseError{Path: path, Message: "document has no root element"}
	}
	return nil
}

func fromWireUnit(w xmlUnit, ns Namespace, path string) (Unit, error) {
	unit := Unit{
		Name:             strings.TrimSpace(w.Name),
		Provider:         strings.TrimSpace(w.Provider),
		TransactionType:  strings.TrimSpace(w.TransactionType),
		Description:      strings.TrimSpace(w.Description),
		JTADataSource:    strings.TrimSpace(w.JTADataSource),
		NonJTADataSource: strings.TrimSpace(w.NonJTADataSource),
		MappingFiles:     trimAll(w.MappingFiles),
		JarFiles:         trimAll(w.JarFiles),
		SharedCacheMode:  strings.TrimSpace(w.SharedCacheMode),
		ValidationMode:   strings.TrimSpace(w.ValidationMode),
		Classes:          jpagen.NewClassSet(),
	}

	if unit.Name == "" {
		return Unit{}, &MalformedDescriptorError{
			Path:    path,
			Message: "<persistence-unit> has no name attribute",
			Hint:    shapeHint,
		}
	}

	if w.ExcludeUnlistedClasses != nil {
		// An empty element means true in the JPA schema.
		raw := strings.TrimSpace(*w.ExcludeUnlistedClasses)
		exclude := true
		if raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				return Unit{}, &MalformedDescriptorError{
					Path:    path,
					Message: fmt.Sprintf("<exclude-unlisted-classes> must be true or false, got %q", raw),
				}
			}
			exclude = parsed
		}
		unit.ExcludeUnlistedClasses = &exclude
	}

	for _, c := range w.Classes {
		name := strings.TrimSpace(c)
		if name == "" {
			return Unit{}, &MalformedDescriptorError{
				Path:    path,
				Message: "empty <class> element",
				Hint:    "Each <class> element must contain a fully-qualified class name.",
			}
		}
		unit.Classes.Add(name)
	}

	for _, e := range w.Extensions {
		ext := Extension{Name: e.XMLName, InnerXML: strings.TrimSpace(e.InnerXML)}
		if ext.Name.Space == ns.URI() {
			ext.Name.Space = ""
		}
		for _, a := range e.Attrs {
			if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
				continue
			}
			ext.Attrs = append(ext.Attrs, a)
		}
		unit.Extensions = append(unit.Extensions, ext)
	}

	var props []xmlProperty
	if w.Properties != nil {
		props = w.Properties.Items
	}
	for _, p := range props {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return Unit{}, &MalformedDescriptorError{
				Path:    path,
				Message: "<property> without a name attribute",
			}
		}
		unit.Properties.Set(name, p.Value)
	}

	return unit, nil
}

func trimAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// Render serializes d as indented UTF-8 XML. The output depends only on the
// content of d: classes are sorted before emission.
func Render(d *Descriptor) ([]byte, error) {
	if d == nil {
		return nil, errors.New("cannot render nil descriptor")
	}
	if strings.TrimSpace(d.Unit.Name) == "" {
		return nil, &MalformedDescriptorError{Message: "persistence unit has no name"}
	}

	ns := d.Namespace
	if !ns.Valid() {
		ns = DefaultNamespace
	}
	version := d.Version
	if version == "" {
		version = ns.DefaultVersion()
	}

	doc := xmlPersistence{
		XMLName: xml.Name{Space: ns.URI(), Local: "persistence"},
		Version: version,
		Units:   []xmlUnit{toWireUnit(d.Unit)},
	}

	body, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to render descriptor: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(xml.Header) + len(body) + 1)
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func toWireUnit(u Unit) xmlUnit {
	w := xmlUnit{
		Name:             u.Name,
		TransactionType:  u.TransactionType,
		Description:      u.Description,
		Provider:         u.Provider,
		JTADataSource:    u.JTADataSource,
		NonJTADataSource: u.NonJTADataSource,
		MappingFiles:     u.MappingFiles,
		JarFiles:         u.JarFiles,
		Classes:          u.Classes.Sorted(),
		SharedCacheMode:  u.SharedCacheMode,
		ValidationMode:   u.ValidationMode,
	}

	if u.ExcludeUnlistedClasses != nil {
		v := strconv.FormatBool(*u.ExcludeUnlistedClasses)
		w.ExcludeUnlistedClasses = &v
	}

	for _, e := range u.Extensions {
		w.Extensions = append(w.Extensions, xmlExtension{XMLName: e.Name, Attrs: e.Attrs, InnerXML: e.InnerXML})
	}

	if len(u.Properties) > 0 {
		w.Properties = &xmlProperties{}
		for _, p := range u.Properties {
			w.Properties.Items = append(w.Properties.Items, xmlProperty{Name: p.Name, Value: p.Value})
		}
	}

	return w
}
