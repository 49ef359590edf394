package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/maxovaroy/merlin-V2/pkg/errorx"
	"github.com/maxovaroy/merlin-V2/pkg/testutil"
	"github.com/maxovaroy/merlin-V2/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name string `json:"name" form:"name"`
}

type echoResponse struct {
	Greeting string `json:"greeting"`
	UserID   string `json:"user_id,omitempty"`
}

func echoHandler(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
	}

	return &echoResponse{
		Greeting: "hello " + req.Name,
		UserID:   xcontext.RequestUserID(ctx),
	}, nil
}

func doRequest(t *testing.T, r *Router, method, target, body string) response {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func Test_Router_envelope(t *testing.T) {
	r := New(testutil.MockContext())
	r.AddCloser(HandleResponse())
	GET(r, "/echo", echoHandler)
	POST(r, "/echo", echoHandler)

	resp := doRequest(t, r, http.MethodGet, "/echo?name=world", "")
	require.Equal(t, int64(0), resp.Code)
	require.Empty(t, resp.Error)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	var echoed echoResponse
	require.NoError(t, json.Unmarshal(data, &echoed))
	require.Equal(t, "hello world", echoed.Greeting)

	resp = doRequest(t, r, http.MethodPost, "/echo", `{"name":""}`)
	require.Equal(t, int64(errorx.BadRequest), resp.Code)
	require.Equal(t, "Not allow an empty name", resp.Error)

	resp = doRequest(t, r, http.MethodPost, "/echo", `not json`)
	require.Equal(t, int64(errorx.BadRequest), resp.Code)
}

func Test_Router_middlewares(t *testing.T) {
	r := New(testutil.MockContext())
	r.AddCloser(HandleResponse())

	authed := r.Branch("/")
	authed.Before(func(ctx context.Context) (context.Context, error) {
		if xcontext.HTTPRequest(ctx).Header.Get("Authorization") == "" {
			return nil, errorx.New(errorx.Unauthenticated, "Not found any authentication")
		}

		return xcontext.WithRequestUserID(ctx, "user1"), nil
	})
	GET(authed, "/me", echoHandler)

	resp := doRequest(t, r, http.MethodGet, "/me?name=me", "")
	require.Equal(t, int64(errorx.Unauthenticated), resp.Code)

	req := httptest.NewRequest(http.MethodGet, "/me?name=me", nil)
	req.Header.Set("Authorization", "Bearer anything")
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	var envelope response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, int64(0), envelope.Code)

	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)

	var echoed echoResponse
	require.NoError(t, json.Unmarshal(data, &echoed))
	require.Equal(t, "user1", echoed.UserID)
}
