package contentmd_test

import (
	"strings"
	"testing"

	"github.com/carlmjohnson/be"
	"github.com/sdr-ops/dormerge/contentmd"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<contentMetadata objectId="bb000bb0001" type="image">
  <resource id="bb000bb0001_1" type="image" sequence="1">
    <file id="image1.tif" mimetype="image/tiff" size="12345"></file>
  </resource>
  <resource id="bb000bb0001_2" type="image" sequence="2">
    <file id="image2.tif" mimetype="image/tiff" size="23456"></file>
  </resource>
</contentMetadata>`

func TestParse(t *testing.T) {
	doc, err := contentmd.Parse(strings.NewReader(sample))
	be.NilErr(t, err)
	be.Equal(t, "bb000bb0001", doc.ObjectID)
	be.Equal(t, contentmd.TypeImage, doc.Type)
	be.Equal(t, 2, doc.Len())
	be.Equal(t, "bb000bb0001_1", doc.Resources[0].ID)
	be.Equal(t, "image1.tif", doc.Resources[0].Files[0].ID)
	be.Equal(t, int64(12345), doc.Resources[0].Files[0].Size)
}

func TestParseInvalid(t *testing.T) {
	_, err := contentmd.Parse(strings.NewReader("not xml"))
	be.Nonzero(t, err)
}

func TestNewDocument(t *testing.T) {
	doc := contentmd.NewDocument("aa000aa0001", contentmd.TypeImage)
	be.Equal(t, "aa000aa0001", doc.ObjectID)
	be.Equal(t, contentmd.TypeImage, doc.Type)
	be.Equal(t, 0, doc.Len())
}

func TestEncode(t *testing.T) {
	doc := contentmd.NewDocument("aa000aa0001", contentmd.TypeImage)
	doc.AddVirtualResource("bb000bb0001", contentmd.Resource{ID: "bb000bb0001_1", Type: "image"})
	sb := &strings.Builder{}
	be.NilErr(t, doc.Encode(sb))
	out := sb.String()
	be.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	be.True(t, strings.Contains(out, `objectId="aa000aa0001"`))
	be.True(t, strings.Contains(out, `externalFile`))
	be.True(t, strings.Contains(out, `resourceId="bb000bb0001_1"`))

	// the encoded form parses back to the same shape
	parsed, err := contentmd.Parse(strings.NewReader(out))
	be.NilErr(t, err)
	be.Equal(t, 1, parsed.Len())
	be.Equal(t, "bb000bb0001", parsed.Resources[0].External.ObjectID)
}

func TestAddVirtualResource(t *testing.T) {
	doc := contentmd.NewDocument("aa000aa0001", contentmd.TypeImage)
	src1 := contentmd.Resource{ID: "bb000bb0001_1", Type: "image"}
	src2 := contentmd.Resource{ID: "bb000bb0001_2", Type: "page"}
	doc.AddVirtualResource("bb000bb0001", src1)
	doc.AddVirtualResource("bb000bb0001", src2)

	be.Equal(t, 2, doc.Len())
	first, second := doc.Resources[0], doc.Resources[1]
	be.Equal(t, "aa000aa0001_1", first.ID)
	be.Equal(t, 1, first.Sequence)
	be.Equal(t, "image", first.Type)
	be.Equal(t, "bb000bb0001", first.External.ObjectID)
	be.Equal(t, "bb000bb0001_1", first.External.ResourceID)
	be.Equal(t, "page", second.Type)
	be.Equal(t, 2, second.Sequence)
}

func TestAddVirtualResourceContinuesSequence(t *testing.T) {
	doc, err := contentmd.Parse(strings.NewReader(sample))
	be.NilErr(t, err)
	added := doc.AddVirtualResource("cc000cc0001", contentmd.Resource{ID: "cc000cc0001_1", Type: "image"})
	be.Equal(t, 3, added.Sequence)
	be.Equal(t, "bb000bb0001_3", added.ID)
}

func TestAddVirtualResourceDuplicatesAllowed(t *testing.T) {
	doc := contentmd.NewDocument("aa000aa0001", contentmd.TypeImage)
	src := contentmd.Resource{ID: "bb000bb0001_1", Type: "image"}
	doc.AddVirtualResource("bb000bb0001", src)
	doc.AddVirtualResource("bb000bb0001", src)
	be.Equal(t, 2, doc.Len())
	be.Equal(t, doc.Resources[0].External.ResourceID, doc.Resources[1].External.ResourceID)
}
