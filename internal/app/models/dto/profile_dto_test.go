package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyList_AcceptsStringOrArray(t *testing.T) {
	var req ProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"companyNames":"TCS, Infosys"}`), &req))
	require.NotNil(t, req.CompanyNames.Delimited)
	assert.Equal(t, "TCS, Infosys", *req.CompanyNames.Delimited)
	assert.Nil(t, req.CompanyNames.Items)

	req = ProfileRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"companyNames":["TCS","Wipro"]}`), &req))
	assert.Nil(t, req.CompanyNames.Delimited)
	assert.Equal(t, []string{"TCS", "Wipro"}, req.CompanyNames.Items)

	req = ProfileRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"companyNames":null}`), &req))
	assert.Nil(t, req.CompanyNames.Delimited)
	assert.Nil(t, req.CompanyNames.Items)

	assert.Error(t, json.Unmarshal([]byte(`{"companyNames":42}`), &req))
}

func TestFlag_LooseEncodings(t *testing.T) {
	cases := map[string]bool{
		`true`:    true,
		`false`:   false,
		`"true"`:  true,
		`"on"`:    true,
		`"false"`: false,
		`""`:      false,
		`1`:       true,
		`0`:       false,
		`null`:    false,
	}
	for raw, want := range cases {
		var req ProfileRequest
		require.NoError(t, json.Unmarshal([]byte(`{"isPlaced":`+raw+`}`), &req), raw)
		assert.Equal(t, want, bool(req.IsPlaced), raw)
	}

	var req ProfileRequest
	assert.Error(t, json.Unmarshal([]byte(`{"isPlaced":"perhaps"}`), &req))
}

func TestSplitCompanyNames(t *testing.T) {
	assert.Equal(t, []string{"TCS", "Infosys"}, SplitCompanyNames("TCS, Infosys"))
	assert.Equal(t, []string{"TCS", "HCL"}, SplitCompanyNames(" TCS ,, ,HCL,"))
	assert.Equal(t, []string{}, SplitCompanyNames(" , "))
}

func TestNewListResponse(t *testing.T) {
	resp := NewListResponse([]int{1, 2}, 2)
	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"count":2`)
	assert.Contains(t, string(body), `"success":true`)

	body, err = json.Marshal(NewSuccessResponse(nil))
	require.NoError(t, err)
	assert.NotContains(t, string(body), `"count"`)
}

func TestErrorCode_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrorCodeValidationFailed.HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, ErrorCodeExpiredToken.HTTPStatus())
	assert.Equal(t, http.StatusForbidden, ErrorCodeForbidden.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, ErrorCodeResourceNotFound.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, ErrorCodeInternalServer.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, ErrorCode("NOPE").HTTPStatus())
}
