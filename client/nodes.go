package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"k8s.io/utils/strings/slices"
)

// Roles a node can hold. Regular is the implicit role of a node that is
// none of the others.
const (
	NodeRoleMaster          = "master"
	NodeRoleMasterCandidate = "master-candidate"
	NodeRoleDrained         = "drained"
	NodeRoleOffline         = "offline"
	NodeRoleRegular         = "regular"
)

// Storage unit types the master manages on its nodes.
const (
	StorageLVMPV = "lvm-pv"
	StorageLVMVG = "lvm-vg"
	StorageFile  = "file"
)

var (
	// The master role is reported but never assigned through the role
	// endpoint; promoting a node is a failover, not a role write.
	settableNodeRoles = []string{NodeRoleMasterCandidate, NodeRoleDrained, NodeRoleOffline, NodeRoleRegular}
	storageTypes      = []string{StorageLVMPV, StorageLVMVG, StorageFile}
)

func checkStorageType(storageType string) error {
	if !slices.Contains(storageTypes, storageType) {
		return fmt.Errorf("invalid storage type %q, must be one of %v", storageType, storageTypes)
	}
	return nil
}

// GetNodeNames lists the names of all nodes in the cluster.
func (c *Client) GetNodeNames() ([]string, error) {
	v, err := c.doRequest(http.MethodGet, apiRoot+"/nodes", nil, nil)
	if err != nil {
		return nil, err
	}
	return idList("nodes", v)
}

// GetNodes returns full descriptions of all nodes.
func (c *Client) GetNodes() ([]*Resource, error) {
	query := url.Values{}
	addFlag(query, "bulk", true)
	return c.requestResourceList(KindNode, http.MethodGet, apiRoot+"/nodes", query, nil)
}

// GetNode returns the named node's description.
func (c *Client) GetNode(name string) (*Resource, error) {
	return c.requestResource(KindNode, http.MethodGet, fmt.Sprintf("%s/nodes/%s", apiRoot, name), nil, nil)
}

// EvacuateNode submits a job moving secondary instances off the named
// node. The replacement secondary comes from remoteNode or from the named
// allocator, never both. earlyRelease drops old replication locks as soon
// as possible at the price of a weaker rollback.
func (c *Client) EvacuateNode(name, remoteNode, iallocator string, earlyRelease, dryRun bool) (string, error) {
	if remoteNode != "" && iallocator != "" {
		return "", fmt.Errorf("remote node and iallocator are mutually exclusive")
	}
	query := url.Values{}
	if remoteNode != "" {
		query.Set("remote_node", remoteNode)
	}
	if iallocator != "" {
		query.Set("iallocator", iallocator)
	}
	query.Set("early_release", boolValue(earlyRelease))
	addFlag(query, "dry-run", dryRun)
	return c.requestString(http.MethodPost, fmt.Sprintf("%s/nodes/%s/evacuate", apiRoot, name), query, nil)
}

// MigrateNode submits a job migrating every primary instance away from
// the named node. live keeps the instances running during the move.
func (c *Client) MigrateNode(name string, live, dryRun bool) (string, error) {
	query := url.Values{}
	query.Set("live", boolValue(live))
	addFlag(query, "dry-run", dryRun)
	return c.requestString(http.MethodPost, fmt.Sprintf("%s/nodes/%s/migrate", apiRoot, name), query, nil)
}

// GetNodeRole returns the named node's current role.
func (c *Client) GetNodeRole(name string) (string, error) {
	return c.requestString(http.MethodGet, fmt.Sprintf("%s/nodes/%s/role", apiRoot, name), nil, nil)
}

// SetNodeRole submits a job changing the named node's role. The master
// reads the new role as a bare JSON string, quotes included, as the whole
// request body.
func (c *Client) SetNodeRole(name, role string, force bool) (string, error) {
	if !slices.Contains(settableNodeRoles, role) {
		return "", fmt.Errorf("invalid node role %q, must be one of %v", role, settableNodeRoles)
	}
	body, err := json.Marshal(role)
	if err != nil {
		return "", fmt.Errorf("encoding role: %w", err)
	}
	query := url.Values{}
	addFlag(query, "force", force)
	return c.requestString(http.MethodPut, fmt.Sprintf("%s/nodes/%s/role", apiRoot, name), query, body)
}

// GetNodeStorageUnits submits a job listing the named node's storage
// units of the given type. outputFields is a comma-separated list of the
// columns to report.
func (c *Client) GetNodeStorageUnits(name, storageType, outputFields string) (string, error) {
	if err := checkStorageType(storageType); err != nil {
		return "", err
	}
	query := url.Values{}
	query.Set("storage_type", storageType)
	query.Set("output_fields", outputFields)
	return c.requestString(http.MethodGet, fmt.Sprintf("%s/nodes/%s/storage", apiRoot, name), query, nil)
}

// ModifyNodeStorageUnits submits a job changing whether the given storage
// unit accepts new allocations.
func (c *Client) ModifyNodeStorageUnits(name, storageType, unitName string, allocatable bool) (string, error) {
	if err := checkStorageType(storageType); err != nil {
		return "", err
	}
	query := url.Values{}
	query.Set("storage_type", storageType)
	query.Set("name", unitName)
	query.Set("allocatable", boolValue(allocatable))
	return c.requestString(http.MethodPut, fmt.Sprintf("%s/nodes/%s/storage/modify", apiRoot, name), query, nil)
}

// RepairNodeStorageUnits submits a job repairing the given storage unit.
func (c *Client) RepairNodeStorageUnits(name, storageType, unitName string) (string, error) {
	if err := checkStorageType(storageType); err != nil {
		return "", err
	}
	query := url.Values{}
	query.Set("storage_type", storageType)
	query.Set("name", unitName)
	return c.requestString(http.MethodPut, fmt.Sprintf("%s/nodes/%s/storage/repair", apiRoot, name), query, nil)
}

// GetNodeTags lists the named node's tags.
func (c *Client) GetNodeTags(name string) ([]string, error) {
	return c.requestStrings(http.MethodGet, fmt.Sprintf("%s/nodes/%s/tags", apiRoot, name), nil, nil)
}

// AddNodeTags submits a job adding tags to the named node.
func (c *Client) AddNodeTags(name string, tags []string, dryRun bool) (string, error) {
	return c.requestString(http.MethodPut, fmt.Sprintf("%s/nodes/%s/tags", apiRoot, name), tagQuery(tags, dryRun), nil)
}

// DeleteNodeTags submits a job removing tags from the named node.
func (c *Client) DeleteNodeTags(name string, tags []string, dryRun bool) (string, error) {
	return c.requestString(http.MethodDelete, fmt.Sprintf("%s/nodes/%s/tags", apiRoot, name), tagQuery(tags, dryRun), nil)
}
