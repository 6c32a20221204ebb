package converter

import (
	"fmt"
	"testing"

	"github.com/fmi-faim/hcs-core/core/fileaccess"
	"github.com/fmi-faim/hcs-core/core/logger"
	"github.com/fmi-faim/hcs-core/core/wellplate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// planeName - builds a file name the way MetaXpress exports them
func planeName(well string, site int, channel int, n int) string {
	return fmt.Sprintf("acq/exp42_%v_s%v_w%v%08X-0000-0000-0000-000000000000.tif", well, site, channel, n)
}

func writeEmptyFiles(t *testing.T, fs fileaccess.FileAccess, bucket string, names []string) {
	t.Helper()

	for _, name := range names {
		err := fs.WriteObject(bucket, name, []byte{})
		require.NoError(t, err)
	}
}

func TestScanAcquisition(t *testing.T) {
	fs := &fileaccess.FSAccess{}
	bucket := t.TempDir()

	writeEmptyFiles(t, fs, bucket, []string{
		// Deliberately not in scan order
		planeName("C03", 1, 2, 6),
		planeName("B07", 2, 1, 2),
		planeName("B07", 1, 1, 1),
		planeName("B07", 1, 2, 3),
		planeName("B07", 2, 2, 4),
		planeName("C03", 1, 1, 5),
		// None of these are planes
		"acq/exp42_B07_s1_w1_thumb00000009-0000-0000-0000-000000000000.tif",
		"acq/exp42.HTD",
		"acq/notes.txt",
		"acq/random.tif",
	})

	scan, err := ScanAcquisition(fs, bucket, "acq", wellplate.Layout96, &logger.NullLogger{})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, scan.Channels)
	assert.Equal(t, 6, scan.PlaneCount())
	assert.Len(t, scan.Wells, 2)

	b07 := scan.Wells["B07"]
	assert.Equal(t, wellplate.Well{Row: 1, Column: 6}, b07.Well)
	assert.Equal(t, []PlaneFile{
		{Path: planeName("B07", 1, 1, 1), Site: 1, Channel: 1},
		{Path: planeName("B07", 2, 1, 2), Site: 2, Channel: 1},
		{Path: planeName("B07", 1, 2, 3), Site: 1, Channel: 2},
		{Path: planeName("B07", 2, 2, 4), Site: 2, Channel: 2},
	}, b07.Planes)

	c03 := scan.Wells["C03"]
	assert.Equal(t, wellplate.Well{Row: 2, Column: 2}, c03.Well)
	assert.Len(t, c03.Planes, 2)
}

func TestScanAcquisitionMissingChannel(t *testing.T) {
	fs := &fileaccess.FSAccess{}
	bucket := t.TempDir()

	writeEmptyFiles(t, fs, bucket, []string{
		planeName("B07", 1, 1, 1),
		planeName("B07", 1, 2, 2),
		planeName("C03", 1, 1, 3),
	})

	_, err := ScanAcquisition(fs, bucket, "acq", wellplate.Layout96, &logger.NullLogger{})
	assert.EqualError(t, err, "well C03 is missing channel w2")
}

func TestScanAcquisitionBadWell(t *testing.T) {
	fs := &fileaccess.FSAccess{}
	bucket := t.TempDir()

	writeEmptyFiles(t, fs, bucket, []string{
		planeName("Z99", 1, 1, 1),
	})

	_, err := ScanAcquisition(fs, bucket, "acq", wellplate.Layout96, &logger.NullLogger{})
	assert.ErrorContains(t, err, "well Z99 is outside a 96 well plate")
	assert.ErrorContains(t, err, "bad well in file name")
}

func TestScanAcquisitionEmpty(t *testing.T) {
	fs := &fileaccess.FSAccess{}
	bucket := t.TempDir()

	_, err := ScanAcquisition(fs, bucket, "acq", wellplate.Layout96, &logger.NullLogger{})
	assert.EqualError(t, err, "no plane images found under acq")
}
