package client

import (
	"encoding/json"
	"net/http"
)

// GetVersion reports the protocol generation the master speaks. Unlike
// every other call this one lives outside the versioned tree, so it works
// against any master.
func (c *Client) GetVersion() (int, error) {
	v, err := c.doRequest(http.MethodGet, "/version", nil, nil)
	if err != nil {
		return 0, err
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, &ShapeError{Op: "GET /version", Want: "number", Got: jsonTypeName(v)}
	}
	n, err := num.Int64()
	if err != nil {
		return 0, &ShapeError{Op: "GET /version", Want: "integer", Got: num.String()}
	}
	return int(n), nil
}

// GetInfo returns the cluster description: name, software versions,
// hypervisor defaults and whatever else the master reports.
func (c *Client) GetInfo() (*Resource, error) {
	return c.requestResource(KindInfo, http.MethodGet, apiRoot+"/info", nil, nil)
}

// RedistributeConfig pushes the cluster configuration out to all nodes.
// Returns the id of the job doing the work.
func (c *Client) RedistributeConfig() (string, error) {
	return c.requestString(http.MethodPut, apiRoot+"/redistribute-config", nil, nil)
}

// GetOperatingSystems lists the OS variants installable on the cluster.
func (c *Client) GetOperatingSystems() ([]string, error) {
	return c.requestStrings(http.MethodGet, apiRoot+"/os", nil, nil)
}

// GetClusterTags lists the tags set on the cluster itself.
func (c *Client) GetClusterTags() ([]string, error) {
	return c.requestStrings(http.MethodGet, apiRoot+"/tags", nil, nil)
}

// AddClusterTags submits a job to add tags to the cluster.
func (c *Client) AddClusterTags(tags []string, dryRun bool) (string, error) {
	return c.requestString(http.MethodPut, apiRoot+"/tags", tagQuery(tags, dryRun), nil)
}

// DeleteClusterTags submits a job to remove tags from the cluster.
func (c *Client) DeleteClusterTags(tags []string, dryRun bool) (string, error) {
	return c.requestString(http.MethodDelete, apiRoot+"/tags", tagQuery(tags, dryRun), nil)
}
