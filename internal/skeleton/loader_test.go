package skeleton

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
  "skeleton": {"hash": "abc", "spine": "4.0.64", "width": 100, "height": 200},
  "bones": [
    {"name": "root"},
    {"name": "hip", "parent": "root", "x": 3, "rotation": 45, "scaleY": 2}
  ],
  "slots": [{"name": "body", "bone": "hip", "attachment": "body"}],
  "skins": [{
    "name": "default",
    "attachments": {
      "body": {
        "body": {"type": "mesh", "uvs": [0,0,1,0,0,1], "triangles": [0,1,2],
                 "vertices": [1,0,0,0,1, 1,0,1,0,1, 1,0,0,1,1]},
        "other": {"type": "region"}
      }
    }
  }]
}`

func TestDecodeDocument(t *testing.T) {
	doc, err := Decode([]byte(sampleDoc))
	require.NoError(t, err)

	require.NotNil(t, doc.Header)
	assert.Equal(t, "4.0.64", doc.Header.Spine)
	require.Len(t, doc.Bones, 2)
	assert.Equal(t, BoneData{Name: "root", ScaleX: 1, ScaleY: 1}, doc.Bones[0])
	assert.Equal(t, BoneData{Name: "hip", Parent: "root", X: 3, Rotation: 45, ScaleX: 1, ScaleY: 2}, doc.Bones[1])
	assert.Equal(t, "hip", doc.Slots[0].Bone)

	skin, err := doc.ActiveSkin()
	require.NoError(t, err)
	att, ok, err := skin.Attachment("body", "body")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, KindMesh, att.Kind())
	assert.True(t, att.Weighted())
	assert.Equal(t, []int{0, 1, 2}, att.Triangles)

	_, ok, err = skin.Attachment("body", "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecodeMissingKeys(t *testing.T) {
	for _, src := range []string{
		`{"slots": [], "skins": []}`,
		`{"bones": [], "skins": []}`,
		`{"bones": [], "slots": []}`,
	} {
		_, err := Decode([]byte(src))
		assert.True(t, errors.Is(err, ErrMissingKey), src)
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{"bones": [`))
	assert.Error(t, err)
}

func TestActiveSkinEmpty(t *testing.T) {
	doc, err := Decode([]byte(`{"bones": [], "slots": [], "skins": []}`))
	require.NoError(t, err)
	_, err = doc.ActiveSkin()
	assert.True(t, errors.Is(err, ErrMissingKey))
}

func TestDecodeLegacySkins(t *testing.T) {
	doc, err := Decode([]byte(`{"bones": [], "slots": [], "skins": {
		"alt": {"s": {"s": {"type": "region"}}},
		"default": {"s": {"s": {"type": "mesh", "vertices": [0,0], "uvs": [0,0], "triangles": []}}}
	}}`))
	require.NoError(t, err)
	require.Len(t, doc.Skins, 2)
	assert.Equal(t, "default", doc.Skins[0].Name)

	skin, _ := doc.ActiveSkin()
	att, ok, err := skin.Attachment("s", "s")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, KindMesh, att.Kind())
	assert.False(t, att.Weighted())
}

func TestAttachmentDefaultKind(t *testing.T) {
	att := &AttachmentData{}
	assert.Equal(t, KindRegion, att.Kind())
}
