// Package service controls the web-server system service via systemctl.
package service
