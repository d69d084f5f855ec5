// Package files groups the packages that read compiled output from disk.
//
// Sub-packages:
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - scanner: Managed-class discovery over class directories and archives
//
// # Usage
//
//	import (
//	    "github.com/ethlo/jpagen/internal/files/filesystem"
//	    "github.com/ethlo/jpagen/internal/files/scanner"
//	)
//
//	s := scanner.NewScannerWithFS(filesystem.NewOSFileSystem(), logger)
//	classes, err := s.Scan(ctx, []string{"target/classes"}, []string{"com.acme.model"})
//
// # Organization
//
//   - filesystem: Provides filesystem abstraction for testability
//   - scanner: Walks classpath entries and parses class files concurrently
package files
