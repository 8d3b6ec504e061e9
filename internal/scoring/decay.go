package scoring

// Proximity breakpoints for clean generation scoring, in km.
const (
	distanceExcellent = 50.0  // below: full credit
	distanceGood      = 100.0 // below: 1.0 -> 0.7
	distanceModerate  = 200.0 // below: 0.7 -> 0.4
	distanceFair      = 300.0 // below: 0.4 -> 0.2, beyond: zero
)

// Transmission infrastructure distance zones, in km. Derived from typical
// voltage-class economics: sub-transmission is local, 230-345kV is regional,
// 500-765kV is bulk, HVDC/EHV covers long hauls.
const (
	transmissionLocal    = 50.0
	transmissionRegional = 150.0
	transmissionBulk     = 300.0
	transmissionLong     = 500.0
)

// Capacity thresholds selecting a plant's likely voltage class.
const (
	capacityLargeMW  = 500.0  // 500-765kV class, gentle decay to 300 km
	capacityMediumMW = 100.0  // 230-345kV class, moderate decay to 150 km
	capacityHVDCMW   = 1000.0 // plants this large may justify HVDC to 500 km
)

// GenerationProximity converts a distance to a clean-generation contribution
// multiplier in [0,1]. Stepped linear decay: full credit under 50 km, then
// 1.0->0.7 over [50,100), 0.7->0.4 over [100,200), 0.4->0.2 over [200,300),
// and zero at or beyond 300 km. The breakpoints and endpoint values are an
// exact contract; normalization downstream depends on the distribution shape
// they produce.
func GenerationProximity(distanceKM float64) float64 {
	switch {
	case distanceKM < distanceExcellent:
		return 1.0
	case distanceKM < distanceGood:
		return 1.0 - (distanceKM-distanceExcellent)/(distanceGood-distanceExcellent)*0.3
	case distanceKM < distanceModerate:
		return 0.7 - (distanceKM-distanceGood)/(distanceModerate-distanceGood)*0.3
	case distanceKM < distanceFair:
		return 0.4 - (distanceKM-distanceModerate)/(distanceFair-distanceModerate)*0.2
	default:
		return 0.0
	}
}

// TransmissionDecay converts a distance and a plant's nameplate capacity to
// a transmission-access multiplier in [0,1].
//
// Capacity selects the voltage class and with it the maximum economic range
// and decay steepness: >=500 MW plants decay gently out to 300 km, 100-500 MW
// moderately out to 150 km, smaller plants steeply out to 50 km. Inside the
// local band (<50 km) access is excellent regardless of class. Beyond a
// class's range only >=1000 MW plants keep a small HVDC residual, decaying
// linearly to zero at 500 km.
func TransmissionDecay(distanceKM, plantCapacityMW float64) float64 {
	var maxRange float64
	switch {
	case plantCapacityMW >= capacityLargeMW:
		maxRange = transmissionBulk
	case plantCapacityMW >= capacityMediumMW:
		maxRange = transmissionRegional
	default:
		maxRange = transmissionLocal
	}

	if distanceKM > maxRange {
		if plantCapacityMW >= capacityHVDCMW && distanceKM < transmissionLong {
			return 0.1 - (distanceKM-maxRange)/(transmissionLong-maxRange)*0.1
		}
		return 0.0
	}

	var base float64
	switch {
	case distanceKM < transmissionLocal:
		base = 1.0
	case distanceKM < transmissionRegional:
		frac := (distanceKM - transmissionLocal) / (transmissionRegional - transmissionLocal)
		switch {
		case plantCapacityMW >= capacityLargeMW:
			base = 1.0 - frac*0.2
		case plantCapacityMW >= capacityMediumMW:
			base = 1.0 - frac*0.4
		default:
			base = 1.0 - frac*0.7
		}
	case distanceKM < transmissionBulk:
		frac := (distanceKM - transmissionRegional) / (transmissionBulk - transmissionRegional)
		switch {
		case plantCapacityMW >= capacityLargeMW:
			base = 0.8 - frac*0.3
		case plantCapacityMW >= capacityMediumMW:
			base = 0.6 - frac*0.4
		default:
			base = 0.3 - frac*0.3
		}
	default:
		frac := (distanceKM - transmissionBulk) / (transmissionLong - transmissionBulk)
		switch {
		case plantCapacityMW >= capacityHVDCMW:
			base = 0.5 - frac*0.4
		case plantCapacityMW >= capacityLargeMW:
			base = 0.2 - frac*0.2
		default:
			base = 0.0
		}
	}

	if base < 0 {
		return 0.0
	}
	return base
}
