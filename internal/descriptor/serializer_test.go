package descriptor

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethlo/jpagen/pkg/jpagen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jakartaDoc = `<?xml version="1.0" encoding="UTF-8"?>
<persistence xmlns="https://jakarta.ee/xml/ns/persistence" version="3.1">
    <persistence-unit name="shop" transaction-type="RESOURCE_LOCAL">
        <description>Shop entities</description>
        <provider>org.eclipse.persistence.jpa.PersistenceProvider</provider>
        <non-jta-data-source>jdbc/shop</non-jta-data-source>
        <mapping-file>META-INF/orm.xml</mapping-file>
        <class>com.acme.shop.Order</class>
        <class>com.acme.shop.Customer</class>
        <exclude-unlisted-classes>true</exclude-unlisted-classes>
        <shared-cache-mode>ENABLE_SELECTIVE</shared-cache-mode>
        <properties>
            <property name="eclipselink.weaving" value="static"/>
            <property name="eclipselink.logging.level" value="FINE"/>
        </properties>
    </persistence-unit>
</persistence>
`

const jcpDoc = `<?xml version="1.0" encoding="UTF-8"?>
<!-- legacy descriptor -->
<persistence xmlns="http://xmlns.jcp.org/xml/ns/persistence"
             xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
             xsi:schemaLocation="http://xmlns.jcp.org/xml/ns/persistence http://xmlns.jcp.org/xml/ns/persistence/persistence_2_2.xsd"
             version="2.2">
  <persistence-unit name="legacy">
    <class>org.example.A</class>
  </persistence-unit>
</persistence>
`

func TestCreate_Defaults(t *testing.T) {
	d := Create("shop")

	assert.Equal(t, NamespaceJakarta, d.Namespace)
	assert.Equal(t, "3.0", d.Version)
	assert.Equal(t, "shop", d.Unit.Name)
	assert.Equal(t, jpagen.DefaultProvider, d.Unit.Provider)
	assert.Equal(t, 0, d.Unit.Classes.Len())

	weaving, ok := d.Unit.Properties.Get(jpagen.WeavingProperty)
	require.True(t, ok)
	assert.Equal(t, jpagen.WeavingStatic, weaving)
}

func TestRender_CreatedDescriptor(t *testing.T) {
	out, err := Render(Create("shop"))
	require.NoError(t, err)

	expected := `<?xml version="1.0" encoding="UTF-8"?>
<persistence xmlns="https://jakarta.ee/xml/ns/persistence" version="3.0">
    <persistence-unit name="shop">
        <provider>org.eclipse.persistence.jpa.PersistenceProvider</provider>
        <properties>
            <property name="eclipselink.weaving" value="static"></property>
        </properties>
    </persistence-unit>
</persistence>
`
	assert.Equal(t, expected, string(out))
}

func TestParse_Jakarta(t *testing.T) {
	d, err := Parse([]byte(jakartaDoc), "persistence.xml")
	require.NoError(t, err)

	assert.Equal(t, NamespaceJakarta, d.Namespace)
	assert.Equal(t, "3.1", d.Version)

	u := d.Unit
	assert.Equal(t, "shop", u.Name)
	assert.Equal(t, "RESOURCE_LOCAL", u.TransactionType)
	assert.Equal(t, "Shop entities", u.Description)
	assert.Equal(t, jpagen.DefaultProvider, u.Provider)
	assert.Equal(t, "jdbc/shop", u.NonJTADataSource)
	assert.Equal(t, []string{"META-INF/orm.xml"}, u.MappingFiles)
	require.NotNil(t, u.ExcludeUnlistedClasses)
	assert.True(t, *u.ExcludeUnlistedClasses)
	assert.Equal(t, "ENABLE_SELECTIVE", u.SharedCacheMode)
	assert.Equal(t, []string{"com.acme.shop.Customer", "com.acme.shop.Order"}, u.Classes.Sorted())
	assert.Equal(t, Properties{
		{Name: "eclipselink.weaving", Value: "static"},
		{Name: "eclipselink.logging.level", Value: "FINE"},
	}, u.Properties)
}

func TestParse_JCP(t *testing.T) {
	d, err := Parse([]byte(jcpDoc), "persistence.xml")
	require.NoError(t, err)

	assert.Equal(t, NamespaceJCP, d.Namespace)
	assert.Equal(t, "2.2", d.Version)
	assert.Equal(t, "legacy", d.Unit.Name)
	assert.Empty(t, d.Unit.Provider)
	assert.True(t, d.Unit.Classes.Contains("org.example.A"))
}

func TestParse_MissingVersionUsesNamespaceDefault(t *testing.T) {
	doc := `<persistence xmlns="http://xmlns.jcp.org/xml/ns/persistence"><persistence-unit name="u"/></persistence>`

	d, err := Parse([]byte(doc), "")
	require.NoError(t, err)
	assert.Equal(t, "2.2", d.Version)
}

func TestParse_DuplicateClassesCollapse(t *testing.T) {
	doc := `<persistence xmlns="https://jakarta.ee/xml/ns/persistence" version="3.0">
  <persistence-unit name="u">
    <class>a.B</class>
    <class> a.B </class>
    <class>a.C</class>
  </persistence-unit>
</persistence>`

	d, err := Parse([]byte(doc), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.B", "a.C"}, d.Unit.Classes.Sorted())
}

func TestParse_DuplicatePropertyKeepsFirstPositionLastValue(t *testing.T) {
	doc := `<persistence xmlns="https://jakarta.ee/xml/ns/persistence" version="3.0">
  <persistence-unit name="u">
    <properties>
      <property name="a" value="1"/>
      <property name="b" value="2"/>
      <property name="a" value="3"/>
    </properties>
  </persistence-unit>
</persistence>`

	d, err := Parse([]byte(doc), "")
	require.NoError(t, err)
	assert.Equal(t, Properties{{Name: "a", Value: "3"}, {Name: "b", Value: "2"}}, d.Unit.Properties)
}

func TestParse_EmptyExcludeUnlistedMeansTrue(t *testing.T) {
	doc := `<persistence xmlns="https://jakarta.ee/xml/ns/persistence" version="3.0">
  <persistence-unit name="u"><exclude-unlisted-classes/></persistence-unit>
</persistence>`

	d, err := Parse([]byte(doc), "")
	require.NoError(t, err)
	require.NotNil(t, d.Unit.ExcludeUnlistedClasses)
	assert.True(t, *d.Unit.ExcludeUnlistedClasses)
}

func TestParse_NotWellFormed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty input", ""},
		{"whitespace only", "   \n"},
		{"truncated", `<persistence xmlns="https://jakarta.ee/xml/ns/persistence"><persistence-unit name="u">`},
		{"mismatched tags", `<persistence><persistence-unit name="u"></persistence>`},
		{"two roots", `<persistence/><persistence/>`},
		{"trailing text", `<persistence/>garbage`},
		{"not xml", `this is not xml`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content), "META-INF/persistence.xml")
			require.Error(t, err)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr), "expected *ParseError, got %T: %v", err, err)
			assert.ErrorIs(t, err, jpagen.ErrDescriptorParse)
			assert.NotErrorIs(t, err, jpagen.ErrMalformedDescriptor)
			assert.Contains(t, err.Error(), "META-INF/persistence.xml")
		})
	}
}

func TestParse_SyntaxErrorCarriesLine(t *testing.T) {
	doc := "<persistence>\n<persistence-unit name=\"u\">\n</persistence>\n"

	_, err := Parse([]byte(doc), "p.xml")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 3, parseErr.Line)
	assert.Contains(t, err.Error(), "line 3")
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{
			name:    "wrong root",
			content: `<beans xmlns="https://jakarta.ee/xml/ns/persistence"/>`,
			message: "expected <persistence>",
		},
		{
			name:    "unknown namespace",
			content: `<persistence xmlns="urn:other"><persistence-unit name="u"/></persistence>`,
			message: "unrecognised namespace",
		},
		{
			name:    "no namespace",
			content: `<persistence><persistence-unit name="u"/></persistence>`,
			message: "unrecognised namespace",
		},
		{
			name:    "no unit",
			content: `<persistence xmlns="https://jakarta.ee/xml/ns/persistence" version="3.0"/>`,
			message: "no <persistence-unit>",
		},
		{
			name: "two units",
			content: `<persistence xmlns="https://jakarta.ee/xml/ns/persistence">
  <persistence-unit name="a"/>
  <persistence-unit name="b"/>
</persistence>`,
			message: "found 2 <persistence-unit>",
		},
		{
			name:    "unnamed unit",
			content: `<persistence xmlns="https://jakarta.ee/xml/ns/persistence"><persistence-unit/></persistence>`,
			message: "no name attribute",
		},
		{
			name:    "empty class",
			content: `<persistence xmlns="https://jakarta.ee/xml/ns/persistence"><persistence-unit name="u"><class> </class></persistence-unit></persistence>`,
			message: "empty <class>",
		},
		{
			name:    "unnamed property",
			content: `<persistence xmlns="https://jakarta.ee/xml/ns/persistence"><persistence-unit name="u"><properties><property value="x"/></properties></persistence-unit></persistence>`,
			message: "without a name",
		},
		{
			name:    "bad boolean",
			content: `<persistence xmlns="https://jakarta.ee/xml/ns/persistence"><persistence-unit name="u"><exclude-unlisted-classes>maybe</exclude-unlisted-classes></persistence-unit></persistence>`,
			message: "must be true or false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content), "p.xml")
			require.Error(t, err)

			var malformed *MalformedDescriptorError
			require.True(t, errors.As(err, &malformed), "expected *MalformedDescriptorError, got %T: %v", err, err)
			assert.ErrorIs(t, err, jpagen.ErrMalformedDescriptor)
			assert.NotErrorIs(t, err, jpagen.ErrDescriptorParse)
			assert.Contains(t, malformed.Message, tt.message)
		})
	}
}

func TestRoundTrip_PreservesModel(t *testing.T) {
	for name, doc := range map[string]string{"jakarta": jakartaDoc, "jcp": jcpDoc} {
		t.Run(name, func(t *testing.T) {
			first, err := Parse([]byte(doc), "")
			require.NoError(t, err)

			rendered, err := Render(first)
			require.NoError(t, err)

			second, err := Parse(rendered, "")
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestRender_ByteStable(t *testing.T) {
	d, err := Parse([]byte(jakartaDoc), "")
	require.NoError(t, err)

	once, err := Render(d)
	require.NoError(t, err)

	reparsed, err := Parse(once, "")
	require.NoError(t, err)
	twice, err := Render(reparsed)
	require.NoError(t, err)

	assert.Equal(t, string(once), string(twice))
}

func TestRender_ClassOrderIndependentOfInsertion(t *testing.T) {
	a := Create("u")
	b := Create("u")
	for _, c := range []string{"z.Z", "a.A", "m.M"} {
		a.Unit.Classes.Add(c)
	}
	for _, c := range []string{"m.M", "z.Z", "a.A"} {
		b.Unit.Classes.Add(c)
	}

	outA, err := Render(a)
	require.NoError(t, err)
	outB, err := Render(b)
	require.NoError(t, err)

	assert.Equal(t, outA, outB)
	assert.Regexp(t, `(?s)<class>a\.A</class>.*<class>m\.M</class>.*<class>z\.Z</class>`, string(outA))
}

func TestRender_KeepsNamespace(t *testing.T) {
	d, err := Parse([]byte(jcpDoc), "")
	require.NoError(t, err)

	out, err := Render(d)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<persistence xmlns="http://xmlns.jcp.org/xml/ns/persistence" version="2.2">`)
}

func TestRender_ElementOrder(t *testing.T) {
	d, err := Parse([]byte(jakartaDoc), "")
	require.NoError(t, err)

	out, err := Render(d)
	require.NoError(t, err)
	assert.Regexp(t, `(?s)<description>.*<provider>.*<non-jta-data-source>.*<mapping-file>.*<class>.*<exclude-unlisted-classes>.*<shared-cache-mode>.*<properties>`, string(out))
}

func TestRender_RejectsInvalidModel(t *testing.T) {
	_, err := Render(nil)
	assert.Error(t, err)

	d := Create("")
	_, err = Render(d)
	assert.ErrorIs(t, err, jpagen.ErrMalformedDescriptor)
}

func TestRender_InvalidNamespaceFallsBackToDefault(t *testing.T) {
	d := &Descriptor{Unit: Unit{Name: "u", Classes: jpagen.NewClassSet()}}

	out, err := Render(d)
	require.NoError(t, err)
	assert.Contains(t, string(out), `xmlns="https://jakarta.ee/xml/ns/persistence" version="3.0"`)
}

func TestProperties_Set(t *testing.T) {
	var p Properties
	p.Set("a", "1")
	p.Set("b", "2")
	p.Set("a", "3")

	assert.Equal(t, Properties{{Name: "a", Value: "3"}, {Name: "b", Value: "2"}}, p)

	_, ok := p.Get("missing")
	assert.False(t, ok)
}

func TestNamespace(t *testing.T) {
	ns, ok := NamespaceFromURI("https://jakarta.ee/xml/ns/persistence")
	require.True(t, ok)
	assert.Equal(t, NamespaceJakarta, ns)
	assert.Equal(t, "jakarta", ns.String())

	_, ok = NamespaceFromURI("urn:x")
	assert.False(t, ok)

	assert.False(t, Namespace(0).Valid())
	assert.Equal(t, "", Namespace(99).URI())
}

func TestParse_DeclaredEncodings(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		description string
	}{
		{
			name: "latin-1",
			content: "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
				"<persistence xmlns=\"http://xmlns.jcp.org/xml/ns/persistence\" version=\"2.2\">\n" +
				"  <persistence-unit name=\"legacy\">\n" +
				"    <description>Caf\xe9 entities</description>\n" +
				"    <class>org.example.A</class>\n" +
				"  </persistence-unit>\n" +
				"</persistence>\n",
			description: "Café entities",
		},
		{
			name: "windows-1252",
			content: "<?xml version=\"1.0\" encoding=\"windows-1252\"?>\n" +
				"<persistence xmlns=\"https://jakarta.ee/xml/ns/persistence\">" +
				"<persistence-unit name=\"u\"><description>na\xefve</description></persistence-unit></persistence>",
			description: "naïve",
		},
		{
			name: "utf-8 lower case",
			content: "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n" +
				"<persistence xmlns=\"https://jakarta.ee/xml/ns/persistence\">" +
				"<persistence-unit name=\"u\"><description>plain</description></persistence-unit></persistence>",
			description: "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse([]byte(tt.content), "p.xml")
			require.NoError(t, err)
			assert.Equal(t, tt.description, d.Unit.Description)

			out, err := Render(d)
			require.NoError(t, err)
			assert.Contains(t, string(out), `encoding="UTF-8"`)
			assert.Contains(t, string(out), tt.description)
		})
	}
}

func TestParse_UnknownEncodingIsParseError(t *testing.T) {
	doc := `<?xml version="1.0" encoding="x-no-such-charset"?><persistence/>`

	_, err := Parse([]byte(doc), "p.xml")
	assert.ErrorIs(t, err, jpagen.ErrDescriptorParse)
}

func TestRender_NoPropertiesElementWhenEmpty(t *testing.T) {
	d := Create("u")
	d.Unit.Properties = nil

	out, err := Render(d)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<properties")

	d, err = Parse([]byte(jcpDoc), "")
	require.NoError(t, err)
	out, err = Render(d)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<properties")
}

func TestParse_KeepsUnmodelledUnitChildren(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<persistence xmlns="https://jakarta.ee/xml/ns/persistence" version="3.2">
    <persistence-unit name="shop">
        <provider>org.eclipse.persistence.jpa.PersistenceProvider</provider>
        <qualifier>com.acme.Primary</qualifier>
        <scope>jakarta.enterprise.context.ApplicationScoped</scope>
        <class>com.acme.Order</class>
    </persistence-unit>
</persistence>
`
	d, err := Parse([]byte(doc), "")
	require.NoError(t, err)
	require.Len(t, d.Unit.Extensions, 2)
	assert.Equal(t, "qualifier", d.Unit.Extensions[0].Name.Local)
	assert.Empty(t, d.Unit.Extensions[0].Name.Space)
	assert.Equal(t, "com.acme.Primary", d.Unit.Extensions[0].InnerXML)
	assert.Equal(t, "scope", d.Unit.Extensions[1].Name.Local)

	d.Unit.Classes.Add("com.acme.Customer")
	out, err := Render(d)
	require.NoError(t, err)

	rendered := string(out)
	assert.Contains(t, rendered, "<qualifier>com.acme.Primary</qualifier>")
	assert.Contains(t, rendered, "<scope>jakarta.enterprise.context.ApplicationScoped</scope>")
	assert.Equal(t, 1, strings.Count(rendered, "xmlns="), "children inherit the root namespace")
	assert.Less(t, strings.Index(rendered, "<provider>"), strings.Index(rendered, "<qualifier>"))
	assert.Less(t, strings.Index(rendered, "<scope>"), strings.Index(rendered, "<class>"))

	reparsed, err := Parse(out, "")
	require.NoError(t, err)
	assert.Equal(t, d, reparsed)
}
