package bootstrap

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	responseDecodingErrorTemplateConstant = "installed package list decoding failed: %v"
	responseStatusErrorTemplateConstant   = "installed package list returned status %d: %s"
	recordEncodingErrorTemplateConstant   = "unable to encode installed package %s: %w"
	recordIndentConstant                  = "  "
	invalidPackageNameTemplateConstant    = "package name %q is not a single directory name"
	packageNameSeparatorsConstant         = `/\`
)

// InvalidPackageNameError reports a package name that cannot be used as one path element.
type InvalidPackageNameError struct {
	Name string
}

// Error describes the rejected name.
func (nameError InvalidPackageNameError) Error() string {
	return fmt.Sprintf(invalidPackageNameTemplateConstant, nameError.Name)
}

// InstalledPackage describes a package installed in the ISV org.
type InstalledPackage struct {
	ID            string `json:"Id"`
	Name          string `json:"Name"`
	Namespace     string `json:"Namespace"`
	VersionID     string `json:"VersionId"`
	VersionName   string `json:"VersionName"`
	VersionNumber string `json:"VersionNumber"`
}

// ResponseDecodingError indicates the installed package list output could not be interpreted.
type ResponseDecodingError struct {
	Status  int
	Message string
	Cause   error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	if decodingError.Cause != nil {
		return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Cause)
	}
	return fmt.Sprintf(responseStatusErrorTemplateConstant, decodingError.Status, decodingError.Message)
}

// Unwrap exposes the JSON error, if any.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

type installedPackageListResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Result  []struct {
		ID                             string `json:"Id"`
		SubscriberPackageName          string `json:"SubscriberPackageName"`
		SubscriberPackageNamespace     string `json:"SubscriberPackageNamespace"`
		SubscriberPackageVersionID     string `json:"SubscriberPackageVersionId"`
		SubscriberPackageVersionName   string `json:"SubscriberPackageVersionName"`
		SubscriberPackageVersionNumber string `json:"SubscriberPackageVersionNumber"`
	} `json:"result"`
}

// DecodeInstalledPackages parses the JSON printed by the installed package list step.
// Packages are returned in the order sfdx reported them.
func DecodeInstalledPackages(output []byte) ([]InstalledPackage, error) {
	var response installedPackageListResponse
	if decodeError := json.Unmarshal(output, &response); decodeError != nil {
		return nil, ResponseDecodingError{Cause: decodeError}
	}
	if response.Status != 0 {
		return nil, ResponseDecodingError{Status: response.Status, Message: response.Message}
	}

	installedPackages := make([]InstalledPackage, 0, len(response.Result))
	for _, entry := range response.Result {
		if !isLocalPackageName(entry.SubscriberPackageName) {
			return nil, ResponseDecodingError{Cause: InvalidPackageNameError{Name: entry.SubscriberPackageName}}
		}
		installedPackages = append(installedPackages, InstalledPackage{
			ID:            entry.ID,
			Name:          entry.SubscriberPackageName,
			Namespace:     entry.SubscriberPackageNamespace,
			VersionID:     entry.SubscriberPackageVersionID,
			VersionName:   entry.SubscriberPackageVersionName,
			VersionNumber: entry.SubscriberPackageVersionNumber,
		})
	}
	return installedPackages, nil
}

// PackageNames returns the package names in order.
func PackageNames(installedPackages []InstalledPackage) []string {
	packageNames := make([]string, 0, len(installedPackages))
	for _, installedPackage := range installedPackages {
		packageNames = append(packageNames, installedPackage.Name)
	}
	return packageNames
}

// isLocalPackageName reports whether name stays inside the directory it is joined to.
func isLocalPackageName(name string) bool {
	return filepath.IsLocal(name) && !strings.ContainsAny(name, packageNameSeparatorsConstant) && name != "."
}

func encodeInstalledPackageRecord(installedPackage InstalledPackage) ([]byte, error) {
	encodedRecord, encodingError := json.MarshalIndent(installedPackage, "", recordIndentConstant)
	if encodingError != nil {
		return nil, fmt.Errorf(recordEncodingErrorTemplateConstant, installedPackage.Name, encodingError)
	}
	return append(encodedRecord, '\n'), nil
}

func installedPackageRecordPath(packageName string) string {
	return joinSalesforcePath(InstalledPackagesDirectory, packageName, installedPackageFileName)
}
