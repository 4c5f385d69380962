// Package install publishes collected bundles to a repository.
//
// A Pipeline takes the sorted install set of a workspace and, for every
// bundle, repacks exploded bundle directories into archives, then hands the
// archive to exactly one Publisher: a LocalPublisher that installs into a
// local repository, or a RemotePublisher that uploads to a remote one.
//
// A failing bundle is reported once in the Report and does not stop the
// batch. Records go to the logger set with WithLogger or carried by the
// context; without either the package is silent.
//
//	repo := repository.NewLocal(filepath.Join(home, ".m2", "repository"))
//	p, err := install.New(install.NewLocalPublisher(repo))
//	if err != nil {
//	    return err
//	}
//	report := p.Run(ctx, bundles)
//	if err := report.Err(); err != nil {
//	    log.Print(err)
//	}
package install
