// Package classfile reads the parts of a JVM class file that matter for
// entity discovery: the class name, its super class, access flags and the
// class-level annotations.
//
// Only the constant pool, the class header and class attributes are
// decoded. Fields and methods are skipped, as are annotations on members.
// Both RuntimeVisibleAnnotations and RuntimeInvisibleAnnotations are read.
//
// Names are returned in source form: "com/acme/Order$Line" becomes
// "com.acme.Order$Line" and the annotation descriptor
// "Ljakarta/persistence/Entity;" becomes "jakarta.persistence.Entity".
package classfile
