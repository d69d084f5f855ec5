// Package descriptor reads, builds and writes JPA persistence descriptors
// (META-INF/persistence.xml).
//
// # Document Shape
//
// jpagen supports descriptors with exactly one persistence unit:
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<persistence xmlns="https://jakarta.ee/xml/ns/persistence" version="3.0">
//	    <persistence-unit name="shop">
//	        <provider>org.eclipse.persistence.jpa.PersistenceProvider</provider>
//	        <class>com.acme.shop.Order</class>
//	        <properties>
//	            <property name="eclipselink.weaving" value="static"></property>
//	        </properties>
//	    </persistence-unit>
//	</persistence>
//
// Two root namespaces are recognised: the JCP namespace used up to JPA 2.2
// (http://xmlns.jcp.org/xml/ns/persistence) and the Jakarta namespace
// (https://jakarta.ee/xml/ns/persistence). The namespace a document was
// parsed with is written back unchanged; new documents use Jakarta.
//
// # Canonical Output
//
// Render output is byte-stable: classes are emitted in ascending order,
// elements follow the order of the JPA schema, and indentation is fixed.
// The same model always renders to the same bytes, so an unchanged
// descriptor never causes a rebuild downstream.
//
// # Errors
//
//   - *ParseError: the input is not well-formed XML (errors.Is jpagen.ErrDescriptorParse)
//   - *MalformedDescriptorError: well-formed XML of the wrong shape (errors.Is jpagen.ErrMalformedDescriptor)
//   - *IOError: the file could not be read or written (errors.Is jpagen.ErrDescriptorIO)
//   - jpagen.ErrDescriptorNotFound: Load found no file
package descriptor
