// Package client provides cached Kubernetes client construction for the
// ConfigMap dataset source. Discovery follows the usual chain: KUBECONFIG,
// ~/.kube/config, then in-cluster service account.
package client
