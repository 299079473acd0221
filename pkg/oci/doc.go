// Package oci pulls and pushes sections datasets as OCI artifacts.
package oci
