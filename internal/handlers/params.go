package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/motorfleet/cars-backend/internal/errs"
)

// idParam parses the :id path parameter; malformed ids are rejected before
// any service method is invoked.
func idParam(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, errs.InvalidArgumentf("Id is not valid ObjectID")
	}
	return id, nil
}

func parseObjectIDs(hexIDs []string, invalidMsg string) ([]primitive.ObjectID, error) {
	if len(hexIDs) == 0 {
		return nil, nil
	}
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, hexID := range hexIDs {
		id, err := primitive.ObjectIDFromHex(hexID)
		if err != nil {
			return nil, errs.InvalidArgumentf("%s", invalidMsg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
