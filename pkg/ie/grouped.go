package ie

// This file builds the grouped IEs spec.md names explicitly. Each
// constructor takes mandatory children as parameters and optional
// children as a trailing variadic slice, matching the convention
// "mandatory non-optional, optional passed alongside" from spec.md §9.
// Accessors walk Children rather than re-parsing Payload, since Parse
// already recursed into every grouped IE's body.

// NewPDI builds a PDI (Packet Detection Information) grouped IE.
// sourceInterface is mandatory; the rest are optional and may be nil.
func NewPDI(sourceInterface *IE, rest ...*IE) (*IE, error) {
	return NewGrouped(TypePDI, append([]*IE{sourceInterface}, rest...)...)
}

// NewCreatePDR builds a Create PDR grouped IE. pdrID, precedence, and pdi
// are mandatory; far/urr/qer ids and outer header removal are optional.
func NewCreatePDR(pdrID, precedence, pdi *IE, optional ...*IE) (*IE, error) {
	return NewGrouped(TypeCreatePDR, append([]*IE{pdrID, precedence, pdi}, optional...)...)
}

// CreatePDRFields is the decoded, typed view of a Create PDR grouped IE.
type CreatePDRFields struct {
	PDRID               uint16
	Precedence           uint32
	PDI                  []*IE
	FARID                *uint32
	URRIDs               []uint32
	QERIDs               []uint32
	OuterHeaderRemoval   *OuterHeaderRemovalDescription
}

// CreatePDRFields decodes a Create PDR IE's children into a typed struct.
func (i *IE) CreatePDRFields() (CreatePDRFields, error) {
	if i.Type != TypeCreatePDR {
		return CreatePDRFields{}, ErrWrongType
	}
	var out CreatePDRFields
	for _, child := range i.Children {
		switch child.Type {
		case TypePDRID:
			v, err := child.PDRID()
			if err != nil {
				return CreatePDRFields{}, err
			}
			out.PDRID = v
		case TypePrecedence:
			v, err := child.Precedence()
			if err != nil {
				return CreatePDRFields{}, err
			}
			out.Precedence = v
		case TypePDI:
			out.PDI = child.Children
		case TypeFARID:
			v, err := child.FARID()
			if err != nil {
				return CreatePDRFields{}, err
			}
			out.FARID = &v
		case TypeURRID:
			v, err := child.URRID()
			if err != nil {
				return CreatePDRFields{}, err
			}
			out.URRIDs = append(out.URRIDs, v)
		case TypeQERID:
			v, err := child.QERID()
			if err != nil {
				return CreatePDRFields{}, err
			}
			out.QERIDs = append(out.QERIDs, v)
		case TypeOuterHeaderRemoval:
			d, _, err := child.OuterHeaderRemoval()
			if err != nil {
				return CreatePDRFields{}, err
			}
			out.OuterHeaderRemoval = &d
		}
	}
	return out, nil
}

// NewForwardingParameters builds a Forwarding Parameters grouped IE.
// destinationInterface is mandatory.
func NewForwardingParameters(destinationInterface *IE, optional ...*IE) (*IE, error) {
	return NewGrouped(TypeForwardingParameters, append([]*IE{destinationInterface}, optional...)...)
}

// NewCreateFAR builds a Create FAR grouped IE. farID and applyAction are
// mandatory; forwardingParameters is optional (only needed when the FAR
// forwards rather than just drops/buffers).
func NewCreateFAR(farID, applyAction *IE, forwardingParameters *IE) (*IE, error) {
	children := []*IE{farID, applyAction}
	if forwardingParameters != nil {
		children = append(children, forwardingParameters)
	}
	return NewGrouped(TypeCreateFAR, children...)
}

// NewCreateURR builds a Create URR grouped IE. urrID and measurementMethod
// are mandatory.
func NewCreateURR(urrID, measurementMethod *IE, optional ...*IE) (*IE, error) {
	return NewGrouped(TypeCreateURR, append([]*IE{urrID, measurementMethod}, optional...)...)
}

// NewCreateQER builds a Create QER grouped IE. qerID and gateStatus are
// mandatory.
func NewCreateQER(qerID, gateStatus *IE, optional ...*IE) (*IE, error) {
	return NewGrouped(TypeCreateQER, append([]*IE{qerID, gateStatus}, optional...)...)
}

// NewCreatedPDR builds a Created PDR grouped IE, sent back by a UPF in a
// Session Establishment/Modification Response. pdrID is mandatory; fteid
// is optional (only present when the UPF itself allocated one, e.g. via
// F-TEID CHOOSE).
func NewCreatedPDR(pdrID *IE, fteid *IE) (*IE, error) {
	children := []*IE{pdrID}
	if fteid != nil {
		children = append(children, fteid)
	}
	return NewGrouped(TypeCreatedPDR, children...)
}

// CreatedPDRFields is the decoded, typed view of a Created PDR grouped IE.
type CreatedPDRFields struct {
	PDRID uint16
	FTEID *FTEID
}

// CreatedPDRFields decodes a Created PDR IE's children.
func (i *IE) CreatedPDRFields() (CreatedPDRFields, error) {
	if i.Type != TypeCreatedPDR {
		return CreatedPDRFields{}, ErrWrongType
	}
	var out CreatedPDRFields
	for _, child := range i.Children {
		switch child.Type {
		case TypePDRID:
			v, err := child.PDRID()
			if err != nil {
				return CreatedPDRFields{}, err
			}
			out.PDRID = v
		case TypeFTEID:
			v, err := child.FTEID()
			if err != nil {
				return CreatedPDRFields{}, err
			}
			out.FTEID = &v
		}
	}
	return out, nil
}

// NewUpdatePDR builds an Update PDR grouped IE; only pdrID is mandatory.
func NewUpdatePDR(pdrID *IE, optional ...*IE) (*IE, error) {
	return NewGrouped(TypeUpdatePDR, append([]*IE{pdrID}, optional...)...)
}

// NewUpdateFAR builds an Update FAR grouped IE; only farID is mandatory.
func NewUpdateFAR(farID *IE, optional ...*IE) (*IE, error) {
	return NewGrouped(TypeUpdateFAR, append([]*IE{farID}, optional...)...)
}

// NewUpdateURR builds an Update URR grouped IE; only urrID is mandatory.
func NewUpdateURR(urrID *IE, optional ...*IE) (*IE, error) {
	return NewGrouped(TypeUpdateURR, append([]*IE{urrID}, optional...)...)
}

// NewUpdateQER builds an Update QER grouped IE; only qerID is mandatory.
func NewUpdateQER(qerID *IE, optional ...*IE) (*IE, error) {
	return NewGrouped(TypeUpdateQER, append([]*IE{qerID}, optional...)...)
}

// NewRemovePDR builds a Remove PDR grouped IE carrying just the ID.
func NewRemovePDR(pdrID *IE) (*IE, error) { return NewGrouped(TypeRemovePDR, pdrID) }

// NewRemoveFAR builds a Remove FAR grouped IE carrying just the ID.
func NewRemoveFAR(farID *IE) (*IE, error) { return NewGrouped(TypeRemoveFAR, farID) }

// NewRemoveURR builds a Remove URR grouped IE carrying just the ID.
func NewRemoveURR(urrID *IE) (*IE, error) { return NewGrouped(TypeRemoveURR, urrID) }

// NewRemoveQER builds a Remove QER grouped IE carrying just the ID.
func NewRemoveQER(qerID *IE) (*IE, error) { return NewGrouped(TypeRemoveQER, qerID) }

// NewUsageReportSRR builds a Usage Report IE as carried in a Session
// Report Request. urrID and usageReportTrigger are mandatory.
func NewUsageReportSRR(urrID, usageReportTrigger *IE, optional ...*IE) (*IE, error) {
	return NewGrouped(TypeUsageReportSRR, append([]*IE{urrID, usageReportTrigger}, optional...)...)
}

// NewUsageReportSDR builds a Usage Report IE as carried in a Session
// Deletion Response.
func NewUsageReportSDR(urrID, usageReportTrigger *IE, optional ...*IE) (*IE, error) {
	return NewGrouped(TypeUsageReportSDR, append([]*IE{urrID, usageReportTrigger}, optional...)...)
}

// NewUsageReportSMR builds a Usage Report IE as carried in a Session
// Modification Response.
func NewUsageReportSMR(urrID, usageReportTrigger *IE, optional ...*IE) (*IE, error) {
	return NewGrouped(TypeUsageReportSMR, append([]*IE{urrID, usageReportTrigger}, optional...)...)
}

// NewDownlinkDataReport builds a Downlink Data Report grouped IE.
// pdrID is mandatory.
func NewDownlinkDataReport(pdrID *IE, optional ...*IE) (*IE, error) {
	return NewGrouped(TypeDownlinkDataReport, append([]*IE{pdrID}, optional...)...)
}

// NewErrorIndicationReport builds an Error Indication Report grouped IE.
func NewErrorIndicationReport(fteid *IE) (*IE, error) {
	return NewGrouped(TypeErrorIndicationReport, fteid)
}

// NewCreateTrafficEndpoint builds a Create Traffic Endpoint grouped IE.
// trafficEndpointID is mandatory.
func NewCreateTrafficEndpoint(trafficEndpointID *IE, optional ...*IE) (*IE, error) {
	return NewGrouped(TypeCreateTrafficEndpoint, append([]*IE{trafficEndpointID}, optional...)...)
}

// NewEthernetPacketFilter builds an Ethernet Packet Filter grouped IE
// from its child filter-property IEs (MAC address, C-TAG, S-TAG,
// Ethertype, ...), all of which are optional at this layer.
func NewEthernetPacketFilter(children ...*IE) (*IE, error) {
	return NewGrouped(TypeEthernetPacketFilter, children...)
}

// NewQoSInformation bundles MBR/GBR/QFI into the auxiliary QoS
// Information grouping this module exposes (see TypeQoSInformation).
func NewQoSInformation(mbr, gbr, qfi *IE) (*IE, error) {
	var children []*IE
	for _, c := range []*IE{mbr, gbr, qfi} {
		if c != nil {
			children = append(children, c)
		}
	}
	return NewGrouped(TypeQoSInformation, children...)
}

// NewCreateBAR builds a Create BAR grouped IE; barID is mandatory.
func NewCreateBAR(barID *IE, optional ...*IE) (*IE, error) {
	return NewGrouped(TypeCreateBAR, append([]*IE{barID}, optional...)...)
}

// NewRemoveBAR builds a Remove BAR grouped IE carrying just the ID.
func NewRemoveBAR(barID *IE) (*IE, error) { return NewGrouped(TypeRemoveBAR, barID) }
