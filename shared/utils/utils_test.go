package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("  {\"a\":1}  "))
	assert.Equal(t, `{"a":1}`, StripCodeFence("```{\"a\":1}```"))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"k1", "k2"}, SplitAndTrim(" k1, ,k2 ,"))
	assert.Nil(t, SplitAndTrim(""))
}

func TestValidateEmail(t *testing.T) {
	ok, err := ValidateEmail("admin@secure-insurance.com")
	assert.True(t, ok)
	assert.NoError(t, err)

	ok, err = ValidateEmail("not-an-email")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestRequireFields(t *testing.T) {
	assert.NoError(t, RequireFields([2]string{"companyId", "c1"}, [2]string{"type", "auto"}))

	err := RequireFields([2]string{"companyId", "c1"}, [2]string{"type", " "})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Field)
}

func TestJSONB_ScanAndValue(t *testing.T) {
	type doc struct {
		Name string `json:"name"`
	}
	in := []doc{{Name: "auto"}}

	v, err := JSONBValue(in)
	require.NoError(t, err)

	var out []doc
	require.NoError(t, ScanJSONB(v, &out))
	assert.Equal(t, in, out)

	require.NoError(t, ScanJSONB(`[{"name":"home"}]`, &out))
	assert.Equal(t, "home", out[0].Name)

	nilValue, err := JSONBValue(nil)
	require.NoError(t, err)
	assert.Nil(t, nilValue)
	assert.Error(t, ScanJSONB(42, &out))
}

func TestSerializeModel(t *testing.T) {
	type session struct {
		ID string `json:"id"`
	}
	var nilSession *session
	_, err := SerializeModel(nilSession)
	assert.Error(t, err)

	data, err := SerializeModel(session{ID: "s1"})
	require.NoError(t, err)
	var out session
	require.NoError(t, DeserializeModel(data, &out))
	assert.Equal(t, "s1", out.ID)
	assert.Error(t, DeserializeModel([]byte{}, &out))
}
