// Package repository provides access to Maven-layout artifact repositories
// used to publish resolved bundles.
//
// A [Local] repository is a directory tree where an artifact with coordinate
// group:id:type[:classifier]:version lives at
//
//	{root}/{group with dots as slashes}/{id}/{version}/{id}-{version}[-{classifier}].{type}
//
// A [Remote] repository accepts the same layout over HTTP PUT.
//
// # Usage
//
//	repo := repository.NewLocal(filepath.Join(home, ".m2", "repository"))
//	coord := repository.MustParseCoordinate("org.slf4j:org.slf4j.api:jar:1.5.8")
//	if err := repo.Install(ctx, coord, "/tmp/org.slf4j.api_1.5.8.jar"); err != nil {
//	    return err
//	}
package repository
