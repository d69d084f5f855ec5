// Package scanner discovers managed JPA classes on a classpath.
//
// Each classpath entry is either a directory of compiled classes or a
// jar/zip archive. Every .class file found is decoded with the classfile
// package, and the class is reported when it carries one of
// jpagen.ManagedAnnotations at class level.
//
// Package filters restrict the result to classes in the given packages and
// their sub-packages. Filters are glob patterns over dotted package names,
// so "com.acme.*.domain" selects the domain package of every module below
// com.acme.
//
// Class files are decoded concurrently. The scanner reads through
// filesystem.FileSystemProvider so tests can run against an in-memory tree.
package scanner
