// Package client Client 实体的请求映射与路由
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"entity-admin/internal/apiserver/entity"
	"entity-admin/internal/shared/model"
	"entity-admin/internal/shared/storage"

	"github.com/getkin/kin-openapi/openapi3"
)

// Body Client 的请求/响应体
type Body struct {
	ID          int64  `json:"_id"`
	ClientID    string `json:"id"`
	Secret      string `json:"secret"`
	RedirectURL string `json:"redirectUrl"`
}

// ErrorBody 存储错误的响应体
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	ID    int64  `json:"_id"`
}

// bodySchema 请求体结构约束
var bodySchema = openapi3.NewObjectSchema().
	WithProperty("_id", openapi3.NewIntegerSchema()).
	WithProperty("id", openapi3.NewStringSchema().WithMinLength(1)).
	WithProperty("secret", openapi3.NewStringSchema()).
	WithProperty("redirectUrl", openapi3.NewStringSchema()).
	WithRequired([]string{"_id", "id"})

// Mapper Client 实体映射器
type Mapper struct{}

var _ entity.Mapper[model.Client] = Mapper{}

// NewMapper 创建映射器
func NewMapper() Mapper {
	return Mapper{}
}

// MapRequestToEntity 从请求体构造 Client
//
// 路径中带 id 时（更新），请求体可以省略 _id；两者同时存在时必须一致。
func (Mapper) MapRequestToEntity(req entity.Request) (model.Client, error) {
	doc, err := decodeObject(req.Body())
	if err != nil {
		return model.Client{}, err
	}

	if param := req.PathParam("id"); param != "" {
		pathID, err := parseID(param)
		if err != nil {
			return model.Client{}, err
		}
		raw, ok := doc["_id"]
		if !ok {
			doc["_id"] = json.Number(strconv.FormatInt(pathID, 10))
		} else if n, isNum := raw.(json.Number); isNum {
			if bodyID, convErr := numberToInt64(n); convErr == nil && bodyID != pathID {
				return model.Client{}, entity.NewMapperError(entity.CodeIDMismatch, "_id",
					fmt.Errorf("path id %d does not match body _id %d", pathID, bodyID))
			}
		}
	}

	if err := bodySchema.VisitJSON(doc); err != nil {
		return model.Client{}, schemaError(err)
	}

	id, err := numberToInt64(doc["_id"].(json.Number))
	if err != nil {
		return model.Client{}, entity.NewMapperError(entity.CodeInvalidValue, "_id", err)
	}

	client := model.Client{ID: id, ClientID: doc["id"].(string)}
	client.Secret, _ = doc["secret"].(string)
	client.RedirectURL, _ = doc["redirectUrl"].(string)
	return client, nil
}

// MapRequestToEntityID 解析路径参数 id
func (Mapper) MapRequestToEntityID(req entity.Request) (int64, error) {
	return parseID(req.PathParam("id"))
}

func (Mapper) MapEntityToResponseBody(c model.Client) any {
	return Body{
		ID:          c.ID,
		ClientID:    c.ClientID,
		Secret:      c.Secret,
		RedirectURL: c.RedirectURL,
	}
}

func (Mapper) MapEntityErrorToResponseBody(err *storage.EntityError) any {
	body := ErrorBody{Code: err.Kind.String(), ID: err.ID}
	switch err.Kind {
	case storage.KindAlreadyExists:
		body.Error = "entity already exists"
	case storage.KindNotFound:
		body.Error = "entity not found"
	default:
		body.Error = err.Error()
	}
	return body
}

func parseID(raw string) (int64, error) {
	if raw == "" {
		return 0, entity.NewMapperError(entity.CodeInvalidID, "id", errors.New("id is required"))
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, entity.NewMapperError(entity.CodeInvalidID, "id", err)
	}
	return id, nil
}

// decodeObject 解码请求体为 JSON 对象，数字保留为 json.Number 以免丢失 int64 精度
func decodeObject(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, entity.NewMapperError(entity.CodeMalformedBody, "", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, entity.NewMapperError(entity.CodeMalformedBody, "", errors.New("unexpected data after JSON object"))
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return nil, entity.NewMapperError(entity.CodeMalformedBody, "", errors.New("body must be a JSON object"))
	}
	return doc, nil
}

// maxExactFloat 2^53，从该值起 float64 不能区分相邻整数
const maxExactFloat = 1 << 53

// numberToInt64 将 JSON 数字转换为 int64
//
// 整数字面量按 int64 解析；7.0、1e3 这类写法只在值为整数且能被 float64 精确表示时接受。
func numberToInt64(n json.Number) (int64, error) {
	if id, err := n.Int64(); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) >= maxExactFloat {
		return 0, fmt.Errorf("%s is not an exact integer", n)
	}
	return int64(f), nil
}

// schemaError 将 openapi3 校验错误转换为 MapperError
func schemaError(err error) error {
	var se *openapi3.SchemaError
	if !errors.As(err, &se) {
		return entity.NewMapperError(entity.CodeInvalidValue, "", err)
	}

	field := strings.Join(se.JSONPointer(), "/")
	code := entity.CodeInvalidValue
	switch se.SchemaField {
	case "required":
		code = entity.CodeMissingField
	case "type", "nullable":
		code = entity.CodeTypeMismatch
	}
	return entity.NewMapperError(code, field, errors.New(se.Reason))
}
