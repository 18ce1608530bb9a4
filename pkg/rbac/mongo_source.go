package rbac

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/guardkit/pkg/scope"
)

// Collection names used by the Mongo grant source.
const (
	UserRolesCollection       = "user_roles"
	RolePermissionsCollection = "role_permissions"
)

// MongoSource is a GrantSource backed by MongoDB. Identifiers are stored as
// canonical uuid strings; permission names are denormalized onto the grant
// documents, so no join is needed at resolution time.
type MongoSource struct {
	db *mongo.Database
}

var _ GrantSource = (*MongoSource)(nil)

// NewMongoSource creates a grant source on top of an existing database handle.
func NewMongoSource(db *mongo.Database) *MongoSource {
	return &MongoSource{db: db}
}

type userRoleDoc struct {
	UserID        string `bson:"user_id"`
	RoleID        string `bson:"role_id"`
	ScopeType     string `bson:"scope_type"`
	ScopeObjectID string `bson:"scope_object_id"`
}

type rolePermissionDoc struct {
	RoleID        string `bson:"role_id"`
	Permission    string `bson:"permission"`
	ScopeType     string `bson:"scope_type"`
	ScopeObjectID string `bson:"scope_object_id"`
	AccessLevel   string `bson:"access_level"`
}

// FindUserRoles returns the user's role assignments matching the requested scope.
func (s *MongoSource) FindUserRoles(ctx context.Context, userID uuid.UUID, requested scope.Scope) ([]UserRole, error) {
	filter := bson.M{
		"user_id":         userID.String(),
		"scope_type":      requested.Type,
		"scope_object_id": bson.M{"$in": requested.ObjectIDCandidates()},
	}

	cursor, err := s.db.Collection(UserRolesCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []userRoleDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]UserRole, 0, len(docs))
	for _, d := range docs {
		uid, err := uuid.Parse(d.UserID)
		if err != nil {
			return nil, err
		}
		rid, err := uuid.Parse(d.RoleID)
		if err != nil {
			return nil, err
		}
		out = append(out, UserRole{
			UserID: uid,
			RoleID: rid,
			Scope:  scope.New(d.ScopeType, d.ScopeObjectID),
		})
	}
	return out, nil
}

// FindRolePermissions returns grants of the permission to any of the given
// roles matching the requested scope, excluding "none" rows.
func (s *MongoSource) FindRolePermissions(ctx context.Context, roleIDs []uuid.UUID, permission Permission, requested scope.Scope) ([]RolePermission, error) {
	ids := make([]string, len(roleIDs))
	for i, id := range roleIDs {
		ids[i] = id.String()
	}

	filter := bson.M{
		"role_id":         bson.M{"$in": ids},
		"permission":      string(permission),
		"scope_type":      requested.Type,
		"scope_object_id": bson.M{"$in": requested.ObjectIDCandidates()},
		"access_level":    bson.M{"$ne": string(AccessNone)},
	}

	cursor, err := s.db.Collection(RolePermissionsCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []rolePermissionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]RolePermission, 0, len(docs))
	for _, d := range docs {
		rid, err := uuid.Parse(d.RoleID)
		if err != nil {
			return nil, err
		}
		out = append(out, RolePermission{
			RoleID:      rid,
			Permission:  Permission(d.Permission),
			Scope:       scope.New(d.ScopeType, d.ScopeObjectID),
			AccessLevel: AccessLevel(d.AccessLevel),
		})
	}
	return out, nil
}
