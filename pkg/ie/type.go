// Package ie implements the PFCP Information Elements: their 16-bit type
// codes, typed fields, and the TLV codec that serialises/parses them.
// Every IE is framed as {2-byte type, 2-byte length, body}; grouped IEs
// recurse into child TLVs via Parse.
package ie

// Type is a PFCP Information Element type code (3GPP TS 29.244 §8.1.2).
type Type uint16

// Catalogue of IE type codes this module knows about. Values not listed
// here still round-trip losslessly as a plain IE whose Payload holds the
// raw body.
const (
	TypeCreatePDR              Type = 1
	TypePDI                    Type = 2
	TypeCreateFAR              Type = 3
	TypeForwardingParameters   Type = 4
	TypeDuplicatingParameters  Type = 5
	TypeCreateURR              Type = 6
	TypeCreateQER              Type = 7
	TypeCreatedPDR             Type = 8
	TypeUpdatePDR              Type = 9
	TypeUpdateFAR              Type = 10
	TypeUpdateForwardingParams Type = 11
	TypeUpdateBARWithinSRR     Type = 12
	TypeUpdateURR              Type = 13
	TypeUpdateQER              Type = 14
	TypeRemovePDR              Type = 15
	TypeRemoveFAR              Type = 16
	TypeRemoveURR              Type = 17
	TypeRemoveQER              Type = 18
	TypeCause                  Type = 19
	TypeSourceInterface        Type = 20
	TypeFTEID                  Type = 21
	TypeNetworkInstance        Type = 22
	TypeSDFFilter              Type = 23
	TypeApplicationID          Type = 24
	TypeGateStatus             Type = 25
	TypeMBR                    Type = 26
	TypeGBR                    Type = 27
	TypeQERCorrelationID       Type = 28
	TypePrecedence             Type = 29
	TypeTransportLevelMarking  Type = 30
	TypeVolumeThreshold        Type = 31
	TypeTimeThreshold          Type = 32
	TypeMonitoringTime         Type = 33
	TypeReportingTriggers      Type = 37
	TypeRedirectInformation    Type = 38
	TypeReportType             Type = 39
	TypeOffendingIE            Type = 40
	TypeForwardingPolicy       Type = 41
	TypeDestinationInterface   Type = 42
	TypeUPFunctionFeatures     Type = 43
	TypeApplyAction            Type = 44
	TypeLoadControlInformation Type = 51
	TypeSequenceNumberIE       Type = 52
	TypeMetric                Type = 53
	TypeOverloadControlInfo   Type = 54
	TypeTimer                 Type = 55
	TypePDRID                 Type = 56
	TypeFSEID                 Type = 57
	TypeNodeID                Type = 60
	TypeMeasurementMethod     Type = 62
	TypeUsageReportTrigger    Type = 63
	TypeMeasurementPeriod     Type = 64
	TypeVolumeMeasurement     Type = 66
	TypeDurationMeasurement   Type = 67
	TypeTimeOfFirstPacket     Type = 69
	TypeTimeOfLastPacket      Type = 70
	TypeQuotaHoldingTime      Type = 71
	TypeVolumeQuota           Type = 73
	TypeTimeQuota             Type = 74
	TypeStartTime             Type = 75
	TypeEndTime               Type = 76
	TypeQueryURR              Type = 77
	TypeUsageReportSMR        Type = 78
	TypeUsageReportSDR        Type = 79
	TypeUsageReportSRR        Type = 80
	TypeURRID                 Type = 81
	TypeLinkedURRID           Type = 82
	TypeDownlinkDataReport    Type = 83
	TypeOuterHeaderCreation   Type = 84
	TypeCreateBAR             Type = 85
	TypeUpdateBARWithinSMR    Type = 86
	TypeRemoveBAR             Type = 87
	TypeBARID                 Type = 88
	TypeCPFunctionFeatures    Type = 89
	TypeUsageInformation      Type = 90
	TypeUEIPAddress           Type = 93
	TypeOuterHeaderRemoval    Type = 95
	TypeRecoveryTimeStamp     Type = 96
	TypeErrorIndicationReport Type = 99
	TypeMeasurementInformation Type = 100
	TypeNodeReportType         Type = 101
	TypeUserPlanePathFailureReport Type = 102
	TypeFARID                  Type = 108
	TypeQERID                  Type = 109
	TypePDNType                Type = 113
	TypeUserPlaneIPResourceInfo Type = 116
	TypeCreateTrafficEndpoint  Type = 127
	TypeCreatedTrafficEndpoint Type = 128
	TypeUpdateTrafficEndpoint  Type = 129
	TypeRemoveTrafficEndpoint  Type = 130
	TypeTrafficEndpointID      Type = 131
	TypeEthernetPacketFilter   Type = 132
	TypeMACAddress             Type = 133
	TypeCTAG                   Type = 134
	TypeSTAG                   Type = 135
	TypeEthertype              Type = 136
	TypeProxying               Type = 137
	TypeEthernetFilterID       Type = 138
	TypeEthernetFilterProperties Type = 139
	TypeUserID                 Type = 141
	TypeApplicationDetectionInfo Type = 68
	TypeRATType                Type = 227
	TypeSNSSAI                 Type = 228

	// pdu_session_type and qfi use the numeric assignments this module's
	// governing specification gives them explicitly, which differ from
	// the codes used by some other PFCP stacks' draft releases.
	TypePDUSessionType Type = 124
	TypeQFI            Type = 125

	// TypeQoSInformation is a non-standard auxiliary grouping this module
	// exposes for bundling MBR/GBR/QFI together in application code; no
	// message builder in this module emits it, though Marshal encodes it
	// and Parse recurses into it like any other grouped IE. Kept out of
	// the 3GPP-assigned range.
	TypeQoSInformation Type = 0x7F00
)

// vendorSpecificBit marks enterprise IE type codes (>= 0x8000); those
// carry a 4-byte enterprise ID before the body, which parsers must skip.
const vendorSpecificBit Type = 0x8000

// IsVendorSpecific reports whether t is in the vendor-specific range.
func (t Type) IsVendorSpecific() bool {
	return t&vendorSpecificBit != 0
}
