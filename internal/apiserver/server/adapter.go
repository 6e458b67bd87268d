package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"entity-admin/internal/apiserver/entity"
)

// httpRequest 将 *http.Request 适配为 entity.Request
type httpRequest struct {
	r *http.Request
}

func (req httpRequest) Context() context.Context     { return req.r.Context() }
func (req httpRequest) PathParam(name string) string { return req.r.PathValue(name) }
func (req httpRequest) Body() io.Reader              { return req.r.Body }

// httpResponse 将 http.ResponseWriter 适配为 entity.Response
//
// 记录响应是否已写出，兜底处理只对未写出的响应生效。
type httpResponse struct {
	w        http.ResponseWriter
	status   int
	written  bool
	finished bool
}

func newHTTPResponse(w http.ResponseWriter) *httpResponse {
	return &httpResponse{w: w, status: http.StatusOK}
}

func (resp *httpResponse) SetStatus(code int) {
	resp.status = code
}

func (resp *httpResponse) SendStatus(code int) {
	if resp.written {
		return
	}
	resp.status = code
	resp.w.WriteHeader(code)
	resp.written = true
	resp.finished = true
}

func (resp *httpResponse) SendBody(body any) error {
	if resp.written {
		return errors.New("response already written")
	}
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}

	resp.w.Header().Set("Content-Type", "application/json")
	resp.w.WriteHeader(resp.status)
	resp.written = true
	resp.finished = true
	if _, err := resp.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("send body: %w", err)
	}
	return nil
}

func (resp *httpResponse) End() {
	resp.finished = true
}

// entityOperation 控制器方法签名
type entityOperation func(entity.Request, entity.Response) error

// handle 将控制器方法包装为 http.HandlerFunc
//
// 兜底规则：
//   - *entity.MapperError → 400 {"error","code","field"}
//   - 其他错误或 panic → 500，无响应体
//   - 响应已写出时只记录日志
func (h *Handler) handle(op entityOperation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := newHTTPResponse(w)

		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.fail(r, resp, fmt.Errorf("panic: %v", rec))
			}
		}()

		if err := op(httpRequest{r: r}, resp); err != nil {
			h.fail(r, resp, err)
			return
		}
		if !resp.written {
			// 控制器只调用了 SetStatus/End
			resp.SendStatus(resp.status)
		}
	}
}

// fail 处理控制器返回的错误
func (h *Handler) fail(r *http.Request, resp *httpResponse, err error) {
	logger := h.logger.WithContext(r.Context()).WithError(err)

	if resp.written {
		logger.Warn("error after response was written",
			"method", r.Method, "path", r.URL.Path)
		return
	}

	var mapperErr *entity.MapperError
	if errors.As(err, &mapperErr) {
		logger.Debug("bad request", "code", mapperErr.Code, "field", mapperErr.Field)
		resp.SetStatus(http.StatusBadRequest)
		if sendErr := resp.SendBody(mapperErrorBody{
			Error: mapperErr.Error(),
			Code:  mapperErr.Code,
			Field: mapperErr.Field,
		}); sendErr == nil {
			return
		}
	}

	logger.Error("request failed", "method", r.Method, "path", r.URL.Path)
	resp.SendStatus(http.StatusInternalServerError)
}

// mapperErrorBody 400 响应体
type mapperErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field"`
}
