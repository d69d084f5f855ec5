// Package toolchain runs the JVM tools that jpagen delegates to.
//
// Three tools are supported:
//   - EclipseLink's StaticWeave, started with the java launcher, which
//     rewrites compiled entity classes in place or into a target directory.
//   - javac in annotation-processing-only mode, which generates the JPA
//     metamodel sources.
//   - Persistence.generateSchema, called from a small embedded Java source
//     run with the JDK source launcher, which writes a DDL script.
//
// The classpath is always passed explicitly on the command line. Processes
// are started through the Runner interface so tests can record the command
// instead of executing it.
package toolchain
