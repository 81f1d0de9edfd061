package helper

import (
	"dearmind-backend/internal/repository/filter"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func ApplyWhere(query firestore.Query, where []filter.Where) firestore.Query {
	for _, w := range where {
		query = query.Where(w.Path, w.Op, w.Value)
	}
	return query
}

func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
