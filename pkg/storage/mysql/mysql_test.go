package mysql_test

import (
	"testing"

	"github.com/indexsync/indexsync/pkg/storage/sqlcommon"
	"github.com/indexsync/indexsync/pkg/storage/test"
	storagefixtures "github.com/indexsync/indexsync/pkg/testfixtures/storage"
)

func TestDatastore(t *testing.T) {
	ds := storagefixtures.MustBootstrapDatastore(t, "mysql")
	test.RunAllTests(t, ds)
}

func TestDatastoreLargeInputs(t *testing.T) {
	const maxParams = 5
	ds := storagefixtures.MustBootstrapDatastore(t, "mysql", sqlcommon.WithMaxParametersPerQuery(maxParams))
	test.RunLargeInputTests(t, ds, maxParams)
}
