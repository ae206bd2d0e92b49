package bootstrap

import (
	"encoding/xml"
	"fmt"
)

const (
	metadataNamespaceConstant             = "http://soap.sforce.com/2006/04/metadata"
	wildcardMemberConstant                = "*"
	manifestEncodingErrorTemplateConstant = "unable to encode package manifest: %w"
)

// DefaultMetadataAPIVersion is used when no API version is configured.
const DefaultMetadataAPIVersion = "42.0"

// apexMetadataTypes are retrieved from the org for debugging.
var apexMetadataTypes = []string{
	"ApexClass",
	"ApexComponent",
	"ApexPage",
	"ApexTrigger",
	"CustomObject",
	"StaticResource",
}

type packageManifest struct {
	XMLName   xml.Name              `xml:"Package"`
	Namespace string                `xml:"xmlns,attr"`
	Types     []packageManifestType `xml:"types"`
	Version   string                `xml:"version"`
}

type packageManifestType struct {
	Members []string `xml:"members"`
	Name    string   `xml:"name"`
}

// BuildPackageManifest renders the package.xml used by the org source retrieve step.
func BuildPackageManifest(apiVersion string) ([]byte, error) {
	if len(apiVersion) == 0 {
		apiVersion = DefaultMetadataAPIVersion
	}

	manifest := packageManifest{Namespace: metadataNamespaceConstant, Version: apiVersion}
	for _, metadataType := range apexMetadataTypes {
		manifest.Types = append(manifest.Types, packageManifestType{Members: []string{wildcardMemberConstant}, Name: metadataType})
	}

	encodedManifest, encodingError := xml.MarshalIndent(manifest, "", "    ")
	if encodingError != nil {
		return nil, fmt.Errorf(manifestEncodingErrorTemplateConstant, encodingError)
	}

	return append([]byte(xml.Header), append(encodedManifest, '\n')...), nil
}
