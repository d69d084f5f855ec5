// Package services orchestrates the jpagen tasks end to end.
//
//   - SyncService: scan the classpath, reconcile persistence.xml, write it
//   - WeaveService: optional sync, then EclipseLink static weaving
//   - ModelGenService: JPA metamodel generation with javac
//   - DDLService: schema creation script from the persistence provider
//
// Services receive their collaborators through constructors and panic on
// nil dependencies. Runtime problems are returned as errors wrapping the
// sentinels of the jpagen package.
package services
