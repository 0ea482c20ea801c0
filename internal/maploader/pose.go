package maploader

import "mapedit/internal/floatpose"

func vec3(x, y, z float32) (floatpose.Vec3, error) {
	return floatpose.NewVec3(x, y, z)
}

func floatposeNew(v float32) (floatpose.Float32, error) {
	return floatpose.New(v)
}

func setEulerAngles(yaw, pitch, roll *floatpose.Float32, pose FreeBlockPose) error {
	var err error
	if *yaw, err = floatpose.New(pose.Yaw); err != nil {
		return err
	}
	if *pitch, err = floatpose.New(pose.Pitch); err != nil {
		return err
	}
	if *roll, err = floatpose.New(pose.Roll); err != nil {
		return err
	}
	return nil
}
