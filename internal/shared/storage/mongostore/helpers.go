package mongostore

import (
	"context"
	"errors"

	"entity-admin/internal/shared/storage"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// wrapError 将 MongoDB 错误转换为领域错误
func wrapError(err error, id int64) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.NotFound(id)
	}
	if mongo.IsDuplicateKeyError(err) {
		return storage.AlreadyExists(id)
	}
	return err
}

// byID 构造按 _id 查询的过滤条件
func byID(id int64) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

// findOne 查找单个文档并解码到 result
func findOne[T any](ctx context.Context, col *mongo.Collection, id int64) (T, error) {
	var result T
	if err := col.FindOne(ctx, byID(id)).Decode(&result); err != nil {
		return result, wrapError(err, id)
	}
	return result, nil
}

// insertOne 插入单个文档
func insertOne(ctx context.Context, col *mongo.Collection, id int64, doc interface{}) error {
	_, err := col.InsertOne(ctx, doc)
	return wrapError(err, id)
}

// replaceOne 按 _id 整体替换文档
func replaceOne(ctx context.Context, col *mongo.Collection, id int64, doc interface{}) error {
	res, err := col.ReplaceOne(ctx, byID(id), doc)
	if err != nil {
		return wrapError(err, id)
	}
	if res.MatchedCount == 0 {
		return storage.NotFound(id)
	}
	return nil
}

// deleteByID 按 _id 删除，文档不存在时不报错
func deleteByID(ctx context.Context, col *mongo.Collection, id int64) error {
	_, err := col.DeleteOne(ctx, byID(id))
	return wrapError(err, id)
}
