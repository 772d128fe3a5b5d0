package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"k8s.io/utils/strings/slices"
)

// Reboot depths accepted by RebootInstance.
const (
	RebootSoft = "soft"
	RebootHard = "hard"
	RebootFull = "full"
)

// Disk replacement modes accepted by ReplaceInstanceDisks.
const (
	ReplaceDiskAuto         = "replace_auto"
	ReplaceDiskPrimary      = "replace_on_primary"
	ReplaceDiskSecondary    = "replace_on_secondary"
	ReplaceDiskNewSecondary = "replace_new_secondary"
)

var (
	rebootTypes      = []string{RebootSoft, RebootHard, RebootFull}
	replaceDiskModes = []string{ReplaceDiskAuto, ReplaceDiskPrimary, ReplaceDiskSecondary, ReplaceDiskNewSecondary}
)

// GetInstanceNames lists the names of all instances on the cluster.
func (c *Client) GetInstanceNames() ([]string, error) {
	v, err := c.doRequest(http.MethodGet, apiRoot+"/instances", nil, nil)
	if err != nil {
		return nil, err
	}
	return idList("instances", v)
}

// GetInstances returns full descriptions of all instances.
func (c *Client) GetInstances() ([]*Resource, error) {
	query := url.Values{}
	addFlag(query, "bulk", true)
	return c.requestResourceList(KindInstance, http.MethodGet, apiRoot+"/instances", query, nil)
}

// GetInstance returns the named instance's description.
func (c *Client) GetInstance(name string) (*Resource, error) {
	return c.requestResource(KindInstance, http.MethodGet, fmt.Sprintf("%s/instances/%s", apiRoot, name), nil, nil)
}

// GetInstanceInfo submits a job gathering detailed runtime information
// about an instance. With static set only configuration data is collected
// and the hypervisor is left alone.
func (c *Client) GetInstanceInfo(name string, static bool) (string, error) {
	query := url.Values{}
	addFlag(query, "static", static)
	return c.requestString(http.MethodGet, fmt.Sprintf("%s/instances/%s/info", apiRoot, name), query, nil)
}

// CreateInstance submits a new-instance job. The spec is marshaled as the
// request body.
func (c *Client) CreateInstance(spec any, dryRun bool) (string, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("encoding instance spec: %w", err)
	}
	query := url.Values{}
	addFlag(query, "dry-run", dryRun)
	return c.requestString(http.MethodPost, apiRoot+"/instances", query, body)
}

// DeleteInstance submits a job removing the named instance.
func (c *Client) DeleteInstance(name string, dryRun bool) (string, error) {
	query := url.Values{}
	addFlag(query, "dry-run", dryRun)
	return c.requestString(http.MethodDelete, fmt.Sprintf("%s/instances/%s", apiRoot, name), query, nil)
}

// StartupInstance submits a job starting the named instance. force brings
// it up even over offline secondaries.
func (c *Client) StartupInstance(name string, force, dryRun bool) (string, error) {
	query := url.Values{}
	addFlag(query, "force", force)
	addFlag(query, "dry-run", dryRun)
	return c.requestString(http.MethodPut, fmt.Sprintf("%s/instances/%s/startup", apiRoot, name), query, nil)
}

// ShutdownInstance submits a job stopping the named instance.
func (c *Client) ShutdownInstance(name string, dryRun bool) (string, error) {
	query := url.Values{}
	addFlag(query, "dry-run", dryRun)
	return c.requestString(http.MethodPut, fmt.Sprintf("%s/instances/%s/shutdown", apiRoot, name), query, nil)
}

// RebootInstance submits a job rebooting the named instance. rebootType
// picks how deep the reboot goes; empty leaves the choice to the master.
func (c *Client) RebootInstance(name, rebootType string, ignoreSecondaries, dryRun bool) (string, error) {
	query := url.Values{}
	if rebootType != "" {
		if !slices.Contains(rebootTypes, rebootType) {
			return "", fmt.Errorf("invalid reboot type %q, must be one of %v", rebootType, rebootTypes)
		}
		query.Set("type", rebootType)
	}
	query.Set("ignore_secondaries", boolValue(ignoreSecondaries))
	addFlag(query, "dry-run", dryRun)
	return c.requestString(http.MethodPost, fmt.Sprintf("%s/instances/%s/reboot", apiRoot, name), query, nil)
}

// ReinstallInstance submits a job reinstalling the named instance's
// operating system. os selects a different variant; empty keeps the
// current one. noStartup leaves the instance down afterwards.
func (c *Client) ReinstallInstance(name, os string, noStartup bool) (string, error) {
	query := url.Values{}
	if os != "" {
		query.Set("os", os)
	}
	addFlag(query, "nostartup", noStartup)
	return c.requestString(http.MethodPost, fmt.Sprintf("%s/instances/%s/reinstall", apiRoot, name), query, nil)
}

// ReplaceInstanceDisks submits a job replacing disks of the named
// instance. disks lists the indexes to replace, empty meaning all of
// them. A new secondary comes from remoteNode or from the named
// allocator, never both.
func (c *Client) ReplaceInstanceDisks(name string, disks []string, mode, remoteNode, iallocator string, dryRun bool) (string, error) {
	if mode == "" {
		mode = ReplaceDiskAuto
	}
	if !slices.Contains(replaceDiskModes, mode) {
		return "", fmt.Errorf("invalid disk replacement mode %q, must be one of %v", mode, replaceDiskModes)
	}
	if remoteNode != "" && iallocator != "" {
		return "", fmt.Errorf("remote node and iallocator are mutually exclusive")
	}
	query := url.Values{}
	query.Set("mode", mode)
	for _, d := range disks {
		query.Add("disks", d)
	}
	if remoteNode != "" {
		query.Set("remote_node", remoteNode)
	}
	if iallocator != "" {
		query.Set("iallocator", iallocator)
	}
	addFlag(query, "dry-run", dryRun)
	return c.requestString(http.MethodPost, fmt.Sprintf("%s/instances/%s/replace-disks", apiRoot, name), query, nil)
}

// GetInstanceTags lists the named instance's tags.
func (c *Client) GetInstanceTags(name string) ([]string, error) {
	return c.requestStrings(http.MethodGet, fmt.Sprintf("%s/instances/%s/tags", apiRoot, name), nil, nil)
}

// AddInstanceTags submits a job adding tags to the named instance.
func (c *Client) AddInstanceTags(name string, tags []string, dryRun bool) (string, error) {
	return c.requestString(http.MethodPut, fmt.Sprintf("%s/instances/%s/tags", apiRoot, name), tagQuery(tags, dryRun), nil)
}

// DeleteInstanceTags submits a job removing tags from the named instance.
func (c *Client) DeleteInstanceTags(name string, tags []string, dryRun bool) (string, error) {
	return c.requestString(http.MethodDelete, fmt.Sprintf("%s/instances/%s/tags", apiRoot, name), tagQuery(tags, dryRun), nil)
}
