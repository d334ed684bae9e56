// Package repo locates namespace files: in local directories, or in git
// checkouts of the repositories that publish the NWB and HDMF schemas.
package repo
