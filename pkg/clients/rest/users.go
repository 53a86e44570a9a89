package rest

import (
	"context"
	"net/http"

	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
)

// userProperties enumerates the user fields the REST bridge exposes. The set
// is smaller than what a full query row carries.
type userProperties struct {
	ID               string      `json:"r_object_id"`
	UserName         string      `json:"user_name"`
	LoginName        string      `json:"user_login_name"`
	Address          string      `json:"user_address"`
	Source           string      `json:"user_source"`
	State            interface{} `json:"user_state"`
	DefaultFolder    string      `json:"default_folder"`
	Description      string      `json:"description"`
	Privileges       interface{} `json:"user_privileges"`
	ClientCapability interface{} `json:"client_capability"`
	Modified         string      `json:"r_modify_date"`
}

func (p userProperties) toUser() *structs.User {
	return &structs.User{
		ID:            p.ID,
		UserName:      p.UserName,
		LoginName:     p.LoginName,
		Address:       p.Address,
		Source:        p.Source,
		State:         clients.StringValue(p.State),
		DefaultFolder: p.DefaultFolder,
		Description:   p.Description,
	}
}

func (p userProperties) attributes() []structs.Attribute {
	attrs := attributeList{}
	attrs.add("r_object_id", p.ID, structs.AttributeTypeID)
	attrs.add("user_name", p.UserName, structs.AttributeTypeString)
	attrs.add("user_login_name", p.LoginName, structs.AttributeTypeString)
	attrs.add("user_address", p.Address, structs.AttributeTypeString)
	attrs.add("user_source", p.Source, structs.AttributeTypeString)
	attrs.addValue("user_state", p.State)
	attrs.add("default_folder", p.DefaultFolder, structs.AttributeTypeString)
	attrs.add("description", p.Description, structs.AttributeTypeString)
	attrs.addValue("user_privileges", p.Privileges)
	attrs.addValue("client_capability", p.ClientCapability)
	attrs.add("r_modify_date", p.Modified, structs.AttributeTypeTime)
	return attrs.sorted()
}

func (c *RESTClient) GetUsers(ctx context.Context, sessionID string) ([]*structs.User, error) {
	log := logger.Logger(ctx).WithField("service", serviceName)

	var resp collection[userProperties]
	if _, err := c.transport.DoJSON(ctx, sessionPath(sessionID, "/users"), http.MethodGet, nil, &resp); err != nil {
		log.WithError(err).Error("error fetching list of users")
		return nil, err
	}

	users := make([]*structs.User, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		users = append(users, e.Content.Properties.toUser())
	}

	log.WithField("total_user_count", len(users)).Info("found users")
	return users, nil
}

func (c *RESTClient) GetUser(ctx context.Context, sessionID, userName string) (*structs.User, error) {
	var resp entry[userProperties]
	if _, err := c.transport.DoJSON(ctx, sessionPath(sessionID, "/users/%s", userName), http.MethodGet, nil, &resp); err != nil {
		return nil, notFound(err, "user", userName)
	}

	user := resp.Content.Properties.toUser()
	user.Attributes = resp.Content.Properties.attributes()
	return user, nil
}

func (c *RESTClient) GetGroupsForUser(ctx context.Context, sessionID, userName string) ([]string, error) {
	var resp nameList
	if _, err := c.transport.DoJSON(ctx, sessionPath(sessionID, "/users/%s/groups", userName), http.MethodGet, nil, &resp); err != nil {
		return nil, err
	}
	return clients.StringList(resp.Names), nil
}
